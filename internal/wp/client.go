// Package wp implements the WordPress REST API client. It authenticates
// with an application password (Basic auth) or a regular password via the
// jwt-auth plugin token flow, and exposes typed per-resource methods plus a
// generic Request for arbitrary endpoints.
package wp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wpagent/internal/op"
)

const (
	// requestTimeout is the ceiling on any single WordPress call.
	requestTimeout = 10 * time.Second

	errorBodyLimit = 512
)

// Site holds the credentials for one WordPress site. Exactly one of
// Password/AppPassword is used for authentication; AppPassword takes
// priority when both are present. Sites are request-scoped and never
// persisted.
type Site struct {
	URL         string
	Username    string
	Password    string
	AppPassword string
}

// Validate checks that the site carries a URL, a username, and at least one
// password form. The placeholder URL from an unconfigured environment is
// treated as missing.
func (s Site) Validate() error {
	if strings.TrimSpace(s.URL) == "" || s.URL == "https://example.com" {
		return op.Configurationf("missing site URL")
	}
	if strings.TrimSpace(s.Username) == "" {
		return op.Configurationf("missing username")
	}
	if s.AppPassword == "" && s.Password == "" {
		return op.Configurationf("missing password or application password")
	}
	return nil
}

// Client performs authenticated calls against one WordPress site.
type Client struct {
	site       Site
	base       string
	root       string
	httpClient *http.Client
	authHeader string
}

// NewClient creates a client for the given site. When an application
// password is present the Authorization header is set immediately; the JWT
// flow for regular passwords happens in Authenticate.
func NewClient(site Site) *Client {
	root := strings.TrimRight(site.URL, "/")
	c := &Client{
		site:       site,
		root:       root,
		base:       root + "/wp-json/wp/v2",
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	if site.AppPassword != "" {
		raw := site.Username + ":" + site.AppPassword
		c.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
	}
	return c
}

// Authenticate establishes credentials with the site. App-password clients
// are already authenticated by header; password clients exchange the
// password for a bearer token via the jwt-auth plugin endpoint.
func (c *Client) Authenticate(ctx context.Context) (bool, error) {
	if c.site.AppPassword != "" {
		return true, nil
	}
	if c.site.Username == "" || c.site.Password == "" {
		return false, nil
	}

	body, err := json.Marshal(map[string]string{
		"username": c.site.Username,
		"password": c.site.Password,
	})
	if err != nil {
		return false, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.root+"/wp-json/jwt-auth/v1/token", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, op.Upstreamf("requesting auth token: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return false, nil
	}

	var decoded struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return false, op.Upstreamf("decoding auth token response: %v", err)
	}
	if decoded.Token == "" {
		return false, nil
	}

	c.authHeader = "Bearer " + decoded.Token
	return true, nil
}

// Request performs a generic call under the wp/v2 namespace. data becomes
// the JSON body for POST/PUT; params become URL query parameters.
func (c *Client) Request(ctx context.Context, method, endpoint string, data map[string]any, params map[string]any) (json.RawMessage, error) {
	endpoint = strings.TrimLeft(endpoint, "/")
	return c.do(ctx, strings.ToUpper(method), c.base+"/"+endpoint, data, params, fmt.Sprintf("%s %s", strings.ToUpper(method), endpoint))
}

// do executes one HTTP call and returns the raw JSON body. The what
// argument names the attempted operation for error context.
func (c *Client) do(ctx context.Context, method, fullURL string, data map[string]any, params map[string]any, what string) (json.RawMessage, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, op.Executionf("invalid method %q", method)
	}

	u, err := url.Parse(fullURL)
	if err != nil {
		return nil, op.Executionf("invalid endpoint %q: %v", fullURL, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, fmt.Sprint(v))
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if data != nil && (method == http.MethodPost || method == http.MethodPut) {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, op.Upstreamf("%s: %v", what, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, op.Upstreamf("%s: reading response: %v", what, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, op.Upstreamf("%s: status %d: %s", what, resp.StatusCode, trimErrorBody(raw))
	}
	return raw, nil
}

// UploadMedia uploads a file to the media library as a multipart request.
func (c *Client) UploadMedia(ctx context.Context, filename string, content io.Reader, title string) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("reading upload content: %w", err)
	}
	if title != "" {
		if err := mw.WriteField("title", title); err != nil {
			return nil, fmt.Errorf("building upload form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/media", &buf)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, op.Upstreamf("uploading media: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, op.Upstreamf("uploading media: reading response: %v", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, op.Upstreamf("uploading media: status %d: %s", resp.StatusCode, trimErrorBody(raw))
	}
	return raw, nil
}

func trimErrorBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > errorBodyLimit {
		text = text[:errorBodyLimit]
	}
	if text == "" {
		return "unknown error"
	}
	return text
}
