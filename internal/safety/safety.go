// Package safety classifies canonical operations as safe or destructive.
// This is intentionally not model-based: the decision to ask for
// confirmation must be deterministic and independent of whatever produced
// the operation.
package safety

import (
	"strings"

	"wpagent/internal/op"
)

// Level represents the safety classification of an operation.
type Level int

const (
	Safe Level = iota
	Destructive
)

// Classify examines a canonical operation and returns its safety level.
// Removals are destructive whether they arrive as an explicit DELETE
// request, a delete intent, or a force parameter on a content endpoint.
func Classify(o op.Operation) Level {
	switch {
	case o.Rest != nil:
		if strings.EqualFold(o.Rest.Method, "DELETE") {
			return Destructive
		}
		if force, ok := o.Rest.Params["force"]; ok && isTruthy(force) {
			return Destructive
		}
	case o.Intent != nil:
		if o.Intent.Action == op.ActionDelete {
			return Destructive
		}
	}
	return Safe
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true") || t == "1"
	}
	return false
}

func (l Level) String() string {
	if l == Destructive {
		return "destructive"
	}
	return "safe"
}
