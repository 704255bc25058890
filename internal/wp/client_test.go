package wp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wpagent/internal/op"
)

func TestSiteValidate(t *testing.T) {
	tests := []struct {
		name    string
		site    Site
		wantErr bool
	}{
		{"app password ok", Site{URL: "https://blog.test", Username: "admin", AppPassword: "xxxx yyyy"}, false},
		{"plain password ok", Site{URL: "https://blog.test", Username: "admin", Password: "secret"}, false},
		{"missing url", Site{Username: "admin", AppPassword: "x"}, true},
		{"placeholder url", Site{URL: "https://example.com", Username: "admin", AppPassword: "x"}, true},
		{"missing username", Site{URL: "https://blog.test", AppPassword: "x"}, true},
		{"missing credentials", Site{URL: "https://blog.test", Username: "admin"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.site.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, op.ErrConfiguration) {
				t.Errorf("Validate() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestClientAppPasswordAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Site{URL: srv.URL, Username: "admin", AppPassword: "abcd efgh"})

	ok, err := c.Authenticate(context.Background())
	if err != nil || !ok {
		t.Fatalf("Authenticate() = %v, %v, want true, nil", ok, err)
	}
	if _, err := c.GetPosts(context.Background(), nil); err != nil {
		t.Fatalf("GetPosts() error: %v", err)
	}

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:abcd efgh"))
	if gotAuth != want {
		t.Errorf("Authorization = %q, want %q", gotAuth, want)
	}
}

func TestClientJWTAuth(t *testing.T) {
	var tokenRequests int
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/jwt-auth/v1/token":
			tokenRequests++
			var creds map[string]string
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Errorf("decoding token request: %v", err)
			}
			if creds["username"] != "admin" || creds["password"] != "secret" {
				t.Errorf("token request creds = %v", creds)
			}
			_, _ = w.Write([]byte(`{"token": "tok-123"}`))
		case "/wp-json/wp/v2/posts":
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(Site{URL: srv.URL, Username: "admin", Password: "secret"})

	ok, err := c.Authenticate(context.Background())
	if err != nil || !ok {
		t.Fatalf("Authenticate() = %v, %v, want true, nil", ok, err)
	}
	if tokenRequests != 1 {
		t.Errorf("token requests = %d, want 1", tokenRequests)
	}
	if _, err := c.GetPosts(context.Background(), nil); err != nil {
		t.Fatalf("GetPosts() error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestClientJWTAuthRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code": "jwt_auth_failed"}`))
	}))
	defer srv.Close()

	c := NewClient(Site{URL: srv.URL, Username: "admin", Password: "wrong"})

	ok, err := c.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}
	if ok {
		t.Error("Authenticate() = true, want false on rejected credentials")
	}
}

func TestClientRequest(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotBody = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
		}
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer srv.Close()

	c := NewClient(Site{URL: srv.URL, Username: "admin", AppPassword: "x"})
	ctx := context.Background()

	t.Run("get with params", func(t *testing.T) {
		raw, err := c.Request(ctx, "get", "/posts", nil, map[string]any{"per_page": 5})
		if err != nil {
			t.Fatalf("Request() error: %v", err)
		}
		if string(raw) != `{"id": 7}` {
			t.Errorf("body = %s", raw)
		}
		if gotMethod != http.MethodGet || gotPath != "/wp-json/wp/v2/posts" {
			t.Errorf("got %s %s", gotMethod, gotPath)
		}
		if gotQuery != "per_page=5" {
			t.Errorf("query = %q, want per_page=5", gotQuery)
		}
	})

	t.Run("post with data", func(t *testing.T) {
		_, err := c.Request(ctx, "POST", "posts", map[string]any{"title": "Hi"}, nil)
		if err != nil {
			t.Fatalf("Request() error: %v", err)
		}
		if gotMethod != http.MethodPost {
			t.Errorf("method = %s", gotMethod)
		}
		if gotBody["title"] != "Hi" {
			t.Errorf("body = %v, want title Hi", gotBody)
		}
	})

	t.Run("invalid method", func(t *testing.T) {
		_, err := c.Request(ctx, "PATCH", "posts", nil, nil)
		if !errors.Is(err, op.ErrExecution) {
			t.Fatalf("Request() error = %v, want ErrExecution", err)
		}
	})
}

func TestClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "rest_post_invalid_id", "message": "Invalid post ID."}`))
	}))
	defer srv.Close()

	c := NewClient(Site{URL: srv.URL, Username: "admin", AppPassword: "x"})

	_, err := c.GetPost(context.Background(), "999")
	if !errors.Is(err, op.ErrUpstream) {
		t.Fatalf("GetPost() error = %v, want ErrUpstream", err)
	}
	for _, want := range []string{"get post 999", "404", "rest_post_invalid_id"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestClientResourcePaths(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var got call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = call{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Site{URL: srv.URL, Username: "admin", AppPassword: "x"})
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
		want call
	}{
		{
			name: "get menus uses plugin namespace",
			run:  func() error { _, err := c.GetMenus(ctx); return err },
			want: call{method: http.MethodGet, path: "/wp-json/wp-api-menus/v2/menus"},
		},
		{
			name: "activate plugin",
			run:  func() error { _, err := c.ActivatePlugin(ctx, "akismet"); return err },
			want: call{method: http.MethodPut, path: "/wp-json/wp/v2/plugins/akismet", body: map[string]any{"status": "active"}},
		},
		{
			name: "deactivate plugin",
			run:  func() error { _, err := c.DeactivatePlugin(ctx, "akismet"); return err },
			want: call{method: http.MethodPut, path: "/wp-json/wp/v2/plugins/akismet", body: map[string]any{"status": "inactive"}},
		},
		{
			name: "update settings",
			run:  func() error { _, err := c.UpdateSettings(ctx, map[string]any{"title": "Blog"}); return err },
			want: call{method: http.MethodPut, path: "/wp-json/wp/v2/settings", body: map[string]any{"title": "Blog"}},
		},
		{
			name: "delete page",
			run:  func() error { _, err := c.DeletePage(ctx, "12"); return err },
			want: call{method: http.MethodDelete, path: "/wp-json/wp/v2/pages/12"},
		},
		{
			name: "custom post type",
			run:  func() error { _, err := c.GetCustomPost(ctx, "portfolio", "3"); return err },
			want: call{method: http.MethodGet, path: "/wp-json/wp/v2/portfolio/3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); err != nil {
				t.Fatalf("call error: %v", err)
			}
			if got.method != tt.want.method || got.path != tt.want.path {
				t.Errorf("got %s %s, want %s %s", got.method, got.path, tt.want.method, tt.want.path)
			}
			for k, v := range tt.want.body {
				if got.body[k] != v {
					t.Errorf("body[%s] = %v, want %v", k, got.body[k], v)
				}
			}
		})
	}
}

func TestDeleteUserParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Site{URL: srv.URL, Username: "admin", AppPassword: "x"})

	if _, err := c.DeleteUser(context.Background(), "4", "1"); err != nil {
		t.Fatalf("DeleteUser() error: %v", err)
	}
	if gotQuery != "force=true&reassign=1" {
		t.Errorf("query = %q, want force=true&reassign=1", gotQuery)
	}

	if _, err := c.DeleteUser(context.Background(), "4", ""); err != nil {
		t.Fatalf("DeleteUser() error: %v", err)
	}
	if gotQuery != "force=true" {
		t.Errorf("query = %q, want force=true", gotQuery)
	}
}

func TestUploadMedia(t *testing.T) {
	var gotContentType string
	var gotFile, gotTitle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("reading file part: %v", err)
			return
		}
		defer func() { _ = f.Close() }()
		gotFile = hdr.Filename
		gotTitle = r.FormValue("title")
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	defer srv.Close()

	c := NewClient(Site{URL: srv.URL, Username: "admin", AppPassword: "x"})

	raw, err := c.UploadMedia(context.Background(), "photo.jpg", strings.NewReader("bytes"), "Vacation")
	if err != nil {
		t.Fatalf("UploadMedia() error: %v", err)
	}
	if string(raw) != `{"id": 42}` {
		t.Errorf("body = %s", raw)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotFile != "photo.jpg" || gotTitle != "Vacation" {
		t.Errorf("file = %q title = %q", gotFile, gotTitle)
	}
}
