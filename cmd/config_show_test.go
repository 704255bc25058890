package cmd

import (
	"bytes"
	"strings"
	"testing"

	"wpagent/internal/config"
)

func TestRunConfigShow(t *testing.T) {
	restore := saveCmdVars(t)
	defer restore()

	cfg := config.Default()
	cfg.WordPress.URL = "https://blog.test"
	cfg.WordPress.Username = "admin"
	cfg.WordPress.AppPassword = "super-secret"
	cfg.AI.OpenAI.APIKey = "sk-live-key"
	setupTestConfig(t, cfg)

	out := &bytes.Buffer{}
	ioOut = out

	if err := runConfigShow(nil, nil); err != nil {
		t.Fatalf("runConfigShow() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "https://blog.test") || !strings.Contains(got, "admin") {
		t.Errorf("output missing site settings: %q", got)
	}
	if strings.Contains(got, "super-secret") || strings.Contains(got, "sk-live-key") {
		t.Errorf("output leaks secrets: %q", got)
	}
	if !strings.Contains(got, "********") {
		t.Errorf("output missing redaction marker: %q", got)
	}
}

func TestRunConfigShowMissingConfig(t *testing.T) {
	restore := saveCmdVars(t)
	defer restore()
	t.Setenv("HOME", t.TempDir())
	ioOut = &bytes.Buffer{}

	err := runConfigShow(nil, nil)
	if err == nil || !strings.Contains(err.Error(), "wpagent setup") {
		t.Fatalf("error = %v, want setup hint", err)
	}
}
