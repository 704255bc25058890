package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"wpagent/internal/op"
)

// codeBlockRe matches fenced code blocks: ```lang\n...\n``` or ```\n...\n```
var codeBlockRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\n(.*?)```")

// ParseOperation extracts the REST operation from a model response.
// The chat-completion backend returns bare JSON; the messages backend may
// wrap the object in prose or a code fence, so the first balanced top-level
// {...} object is located and parsed. A missing or invalid method or
// endpoint fails the parse.
func ParseOperation(raw string) (op.Rest, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return op.Rest{}, fmt.Errorf("empty model response")
	}

	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	blob, ok := firstJSONObject(text)
	if !ok {
		return op.Rest{}, fmt.Errorf("no JSON object in model response")
	}

	var decoded struct {
		Method   string         `json:"method"`
		Endpoint string         `json:"endpoint"`
		Params   map[string]any `json:"params"`
		Data     map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(blob), &decoded); err != nil {
		return op.Rest{}, fmt.Errorf("parsing model response JSON: %w", err)
	}

	method := strings.ToUpper(strings.TrimSpace(decoded.Method))
	switch method {
	case "GET", "POST", "PUT", "DELETE":
	case "":
		return op.Rest{}, fmt.Errorf("model response is missing the method field")
	default:
		return op.Rest{}, fmt.Errorf("model response has unsupported method %q", decoded.Method)
	}

	endpoint := strings.Trim(strings.TrimSpace(decoded.Endpoint), "/")
	if endpoint == "" {
		return op.Rest{}, fmt.Errorf("model response is missing the endpoint field")
	}

	rest := op.Rest{
		Method:   method,
		Endpoint: endpoint,
		Params:   decoded.Params,
		Data:     decoded.Data,
	}
	if rest.Params == nil {
		rest.Params = map[string]any{}
	}
	if rest.Data == nil {
		rest.Data = map[string]any{}
	}
	return rest, nil
}

// firstJSONObject returns the first balanced top-level {...} object in
// text. Braces inside JSON strings are ignored.
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
