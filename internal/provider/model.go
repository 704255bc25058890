package provider

import (
	"encoding/json"
	"strings"
)

// resolveModel returns requestModel when non-empty, otherwise defaultModel.
func resolveModel(requestModel, defaultModel string) string {
	if m := strings.TrimSpace(requestModel); m != "" {
		return m
	}
	return defaultModel
}

// isStructuredJSON reports whether text is a complete JSON document. Only
// meaningful when the caller asked for JSON output.
func isStructuredJSON(expectJSON bool, text string) bool {
	if !expectJSON {
		return false
	}
	var decoded any
	return json.Unmarshal([]byte(text), &decoded) == nil
}
