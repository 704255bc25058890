// Package op defines the canonical operation produced by every resolution
// strategy and consumed uniformly by the executor. An Operation is a tagged
// union: exactly one of Rest or Intent is set, depending on which strategy
// resolved it. Strategies never merge partial results.
package op

import "strings"

// Actions recognized on the intent path.
const (
	ActionGet        = "get"
	ActionGetByID    = "getById"
	ActionGetByName  = "getByName"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionUpload     = "upload"
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
)

// Rest is a REST-shaped operation: produced by the LLM path, by direct
// REST-shaped input, or by the regex fallback extractor.
type Rest struct {
	Method   string         `json:"method"`
	Endpoint string         `json:"endpoint"`
	Params   map[string]any `json:"params,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Intent is an intent-shaped operation produced by the local classifier:
// a coarse resource/action pair plus named slot values.
type Intent struct {
	Resource string            `json:"resource"`
	Action   string            `json:"action"`
	Entities map[string]string `json:"entities,omitempty"`
}

// Operation is the canonical result of intent resolution.
type Operation struct {
	Rest   *Rest   `json:"rest,omitempty"`
	Intent *Intent `json:"intent,omitempty"`
}

// FromRest wraps a REST-shaped operation.
func FromRest(r Rest) Operation { return Operation{Rest: &r} }

// FromIntent wraps an intent-shaped operation.
func FromIntent(i Intent) Operation { return Operation{Intent: &i} }

// IsContentEndpoint reports whether endpoint targets posts or pages,
// either as a collection or a single item (e.g. "posts", "pages/123").
func IsContentEndpoint(endpoint string) bool {
	return endpoint == "posts" || endpoint == "pages" ||
		strings.HasPrefix(endpoint, "posts/") || strings.HasPrefix(endpoint, "pages/")
}

// isWrite reports whether method creates or modifies content.
func isWrite(method string) bool {
	m := strings.ToUpper(method)
	return m == "POST" || m == "PUT"
}

// ApplyPublishPolicy enforces the standing business rule: content created or
// updated through the gateway is published immediately, never left as a
// draft. An explicit status in the payload is preserved. Returns true when
// the status was defaulted.
func (r *Rest) ApplyPublishPolicy() bool {
	if !isWrite(r.Method) || !IsContentEndpoint(r.Endpoint) {
		return false
	}
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	if _, ok := r.Data["status"]; ok {
		return false
	}
	r.Data["status"] = "publish"
	return true
}

// ApplyPublishPolicy is the intent-path counterpart: create/update of posts
// or pages gets status "publish" unless the entities already carry one.
func (i *Intent) ApplyPublishPolicy() bool {
	if i.Action != ActionCreate && i.Action != ActionUpdate {
		return false
	}
	if i.Resource != "posts" && i.Resource != "pages" {
		return false
	}
	if i.Entities == nil {
		i.Entities = map[string]string{}
	}
	if _, ok := i.Entities["status"]; ok {
		return false
	}
	i.Entities["status"] = "publish"
	return true
}
