package executor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"wpagent/internal/op"
)

// Interpret describes a canonical operation in one human-readable line.
func Interpret(o op.Operation) string {
	switch {
	case o.Rest != nil:
		return fmt.Sprintf("%s request to endpoint %q",
			strings.ToUpper(o.Rest.Method), o.Rest.Endpoint)
	case o.Intent != nil:
		return fmt.Sprintf("%s operation on %s",
			strings.ToUpper(o.Intent.Action), o.Intent.Resource)
	}
	return "unknown operation"
}

// Summarize condenses a raw WordPress response for display: item count for
// collections, the title or name and id for single objects. Falls back to
// the raw body when the shape is unrecognized.
func Summarize(result json.RawMessage) string {
	trimmed := strings.TrimSpace(string(result))
	if trimmed == "" {
		return "empty response"
	}

	switch trimmed[0] {
	case '[':
		count := 0
		_, err := jsonparser.ArrayEach(result, func([]byte, jsonparser.ValueType, int, error) {
			count++
		})
		if err != nil {
			return trimmed
		}
		if count == 1 {
			return "1 item"
		}
		return fmt.Sprintf("%d items", count)
	case '{':
		label, _ := jsonparser.GetString(result, "title", "rendered")
		if label == "" {
			label, _ = jsonparser.GetString(result, "title", "raw")
		}
		if label == "" {
			label, _ = jsonparser.GetString(result, "name")
		}
		if label == "" {
			label, _ = jsonparser.GetString(result, "message")
		}
		id, idErr := jsonparser.GetInt(result, "id")

		switch {
		case label != "" && idErr == nil:
			return fmt.Sprintf("%s (id %d)", label, id)
		case label != "":
			return label
		case idErr == nil:
			return fmt.Sprintf("id %d", id)
		}
	}
	return trimmed
}
