package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"wpagent/internal/executor"
	"wpagent/internal/op"
	"wpagent/internal/resolve"
)

// chatMessage mirrors the chat wire format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// mcpRequest accepts both the chat format (messages array) and the legacy
// single-query field.
type mcpRequest struct {
	Messages []chatMessage `json:"messages"`
	Query    string        `json:"query"`
}

// handleMCP serves the chat-style endpoint: the last user message runs
// through the pipeline and comes back as an assistant reply.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}

	var req mcpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, op.Resolutionf("decoding chat request: %v", err))
		return
	}

	// Only the latest user turn drives resolution. Clients replay history
	// including assistant replies; taking the last message regardless of
	// role would re-resolve our own interpretation text.
	text := req.Query
	for _, m := range req.Messages {
		if m.Role == "user" {
			text = m.Content
		}
	}
	if strings.TrimSpace(text) == "" {
		s.writeError(w, op.Resolutionf("empty chat request"))
		return
	}

	interpretation, result, err := s.run(r, text, s.defaultSite)
	if err != nil {
		s.writeError(w, err)
		return
	}

	content := interpretation
	if len(result) > 0 {
		content = interpretation + "\n" + string(result)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": []chatMessage{{Role: "assistant", Content: content}},
	})
}

// nlpRequest carries a query plus optional per-request site credentials.
type nlpRequest struct {
	Query       string `json:"query"`
	Text        string `json:"text"`
	WPURL       string `json:"wpUrl"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	AppPassword string `json:"appPassword"`
}

// handleNLP serves the natural-language endpoint. POST carries the request
// in the body; GET carries it in query parameters.
func (s *Server) handleNLP(w http.ResponseWriter, r *http.Request) {
	var req nlpRequest
	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, op.Resolutionf("decoding request: %v", err))
			return
		}
	case http.MethodGet:
		q := r.URL.Query()
		req = nlpRequest{
			Query:       q.Get("query"),
			WPURL:       q.Get("wpUrl"),
			Username:    q.Get("username"),
			Password:    q.Get("password"),
			AppPassword: q.Get("appPassword"),
		}
	default:
		methodNotAllowed(w, r)
		return
	}

	text := req.Query
	if text == "" {
		text = req.Text
	}
	if strings.TrimSpace(text) == "" {
		s.writeError(w, op.Resolutionf("empty query"))
		return
	}

	site := s.siteFromRequest(req.WPURL, req.Username, req.Password, req.AppPassword)
	interpretation, result, err := s.run(r, text, site)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := map[string]any{
		"success":        true,
		"interpretation": interpretation,
	}
	if len(result) > 0 {
		resp["result"] = json.RawMessage(result)
	}
	writeJSON(w, http.StatusOK, resp)
}

// authParams are credential query parameters that must never be forwarded
// to WordPress.
var authParams = map[string]bool{
	"wpUrl":       true,
	"username":    true,
	"password":    true,
	"appPassword": true,
}

// handlePassthrough forwards /api/wordpress/<endpoint> to the site's REST
// API. Credentials come from query parameters and are stripped before the
// remaining parameters are forwarded.
func (s *Server) handlePassthrough(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/wordpress/"), "/")
	if endpoint == "" {
		s.writeError(w, op.Executionf("missing endpoint"))
		return
	}

	q := r.URL.Query()
	site := s.siteFromRequest(q.Get("wpUrl"), q.Get("username"), q.Get("password"), q.Get("appPassword"))
	if err := site.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	params := map[string]any{}
	for k, vs := range q {
		if authParams[k] || len(vs) == 0 {
			continue
		}
		params[k] = vs[0]
	}

	var data map[string]any
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
			s.writeError(w, op.Executionf("decoding request body: %v", err))
			return
		}
	}

	o := op.FromRest(op.Rest{
		Method:   r.Method,
		Endpoint: endpoint,
		Params:   params,
		Data:     data,
	})

	if ack, ok := resolve.Intercept(o); ok {
		writeJSON(w, http.StatusOK, json.RawMessage(ack))
		return
	}

	exec, err := executor.New(s.newClient(site))
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := exec.Execute(r.Context(), o)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(result))
}
