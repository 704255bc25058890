// Package repl implements the interactive chat loop. Each line runs the
// full resolution pipeline against the configured site; destructive
// operations ask for confirmation before they execute.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"wpagent/internal/executor"
	"wpagent/internal/resolve"
	"wpagent/internal/safety"
	"wpagent/internal/wp"
)

// requestTimeout caps one full resolve-and-execute round trip, including
// the generative-model call.
const requestTimeout = 120 * time.Second

// Run starts the interactive loop. in and out are injectable for testing.
func Run(res *resolve.Resolver, cms executor.CMS, site wp.Site, in io.Reader, out io.Writer) error {
	exec, err := executor.New(cms)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "wpagent chat (type 'exit' to quit)")
	_, _ = fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "wp> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				_, _ = fmt.Fprintf(out, "\nInput error: %v\n", err)
				return err
			}
			_, _ = fmt.Fprintln(out)
			break // EOF (Ctrl+D)
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			_, _ = fmt.Fprintln(out, "Bye!")
			return nil
		}

		handleLine(res, exec, site, input, scanner, out)
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

func handleLine(res *resolve.Resolver, exec *executor.Executor, site wp.Site, input string, scanner *bufio.Scanner, out io.Writer) {
	if reply, ok := resolve.Normalize(input); ok {
		_, _ = fmt.Fprintln(out, reply)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	o, err := res.Resolve(ctx, input, site)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	_, _ = fmt.Fprintf(out, "  %s\n", executor.Interpret(o))

	if ack, ok := resolve.Intercept(o); ok {
		_, _ = fmt.Fprintf(out, "  %s\n", ack)
		return
	}

	if safety.Classify(o) == safety.Destructive && !confirmDelete(scanner, out) {
		_, _ = fmt.Fprintln(out, "  Skipped.")
		return
	}

	result, err := exec.Execute(ctx, o)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	_, _ = fmt.Fprintf(out, "  %s\n", executor.Summarize(result))
}

// confirmDelete reads a yes/no answer from the shared scanner so the
// confirmation does not fight the main loop over buffered input.
func confirmDelete(scanner *bufio.Scanner, out io.Writer) bool {
	_, _ = fmt.Fprint(out, "  This will delete content. Continue? [y/N]: ")
	if !scanner.Scan() {
		return false
	}
	switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
