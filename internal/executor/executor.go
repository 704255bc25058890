// Package executor maps a canonical operation onto the WordPress client.
// REST-shaped operations go through the generic request; intent-shaped
// operations dispatch through a closed resource/action handler table that
// is checked for completeness at construction, so an unsupported
// combination is a startup defect rather than a silent runtime fallthrough.
package executor

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"wpagent/internal/op"
)

// CMS is the WordPress client surface the executor depends on. *wp.Client
// satisfies it; tests substitute a recorder.
type CMS interface {
	Request(ctx context.Context, method, endpoint string, data, params map[string]any) (json.RawMessage, error)

	GetPosts(ctx context.Context, params map[string]any) (json.RawMessage, error)
	GetPost(ctx context.Context, id string) (json.RawMessage, error)
	CreatePost(ctx context.Context, data map[string]any) (json.RawMessage, error)
	UpdatePost(ctx context.Context, id string, data map[string]any) (json.RawMessage, error)
	DeletePost(ctx context.Context, id string) (json.RawMessage, error)

	GetPages(ctx context.Context, params map[string]any) (json.RawMessage, error)
	GetPage(ctx context.Context, id string) (json.RawMessage, error)
	CreatePage(ctx context.Context, data map[string]any) (json.RawMessage, error)
	UpdatePage(ctx context.Context, id string, data map[string]any) (json.RawMessage, error)
	DeletePage(ctx context.Context, id string) (json.RawMessage, error)

	GetMedia(ctx context.Context, params map[string]any) (json.RawMessage, error)
	GetMediaItem(ctx context.Context, id string) (json.RawMessage, error)
	UploadMedia(ctx context.Context, filename string, content io.Reader, title string) (json.RawMessage, error)
	DeleteMedia(ctx context.Context, id string) (json.RawMessage, error)

	GetUsers(ctx context.Context, params map[string]any) (json.RawMessage, error)
	GetUser(ctx context.Context, id string) (json.RawMessage, error)
	CreateUser(ctx context.Context, data map[string]any) (json.RawMessage, error)
	UpdateUser(ctx context.Context, id string, data map[string]any) (json.RawMessage, error)
	DeleteUser(ctx context.Context, id, reassign string) (json.RawMessage, error)

	GetCategories(ctx context.Context, params map[string]any) (json.RawMessage, error)
	GetCategory(ctx context.Context, id string) (json.RawMessage, error)
	CreateCategory(ctx context.Context, data map[string]any) (json.RawMessage, error)
	UpdateCategory(ctx context.Context, id string, data map[string]any) (json.RawMessage, error)
	DeleteCategory(ctx context.Context, id string) (json.RawMessage, error)

	GetTags(ctx context.Context, params map[string]any) (json.RawMessage, error)
	GetTag(ctx context.Context, id string) (json.RawMessage, error)
	CreateTag(ctx context.Context, data map[string]any) (json.RawMessage, error)
	UpdateTag(ctx context.Context, id string, data map[string]any) (json.RawMessage, error)
	DeleteTag(ctx context.Context, id string) (json.RawMessage, error)

	GetComments(ctx context.Context, params map[string]any) (json.RawMessage, error)
	GetComment(ctx context.Context, id string) (json.RawMessage, error)
	CreateComment(ctx context.Context, data map[string]any) (json.RawMessage, error)
	UpdateComment(ctx context.Context, id string, data map[string]any) (json.RawMessage, error)
	DeleteComment(ctx context.Context, id string) (json.RawMessage, error)

	GetMenus(ctx context.Context) (json.RawMessage, error)
	GetMenu(ctx context.Context, id string) (json.RawMessage, error)

	GetPlugins(ctx context.Context) (json.RawMessage, error)
	GetPlugin(ctx context.Context, plugin string) (json.RawMessage, error)
	ActivatePlugin(ctx context.Context, plugin string) (json.RawMessage, error)
	DeactivatePlugin(ctx context.Context, plugin string) (json.RawMessage, error)

	GetSettings(ctx context.Context) (json.RawMessage, error)
	UpdateSettings(ctx context.Context, data map[string]any) (json.RawMessage, error)

	GetCustomPosts(ctx context.Context, typ string, params map[string]any) (json.RawMessage, error)
	GetCustomPost(ctx context.Context, typ, id string) (json.RawMessage, error)
	CreateCustomPost(ctx context.Context, typ string, data map[string]any) (json.RawMessage, error)
	UpdateCustomPost(ctx context.Context, typ, id string, data map[string]any) (json.RawMessage, error)
	DeleteCustomPost(ctx context.Context, typ, id string) (json.RawMessage, error)
}

// Executor dispatches canonical operations against one CMS client.
type Executor struct {
	cms      CMS
	handlers map[key]handler
}

// The handler table is built and checked once at package initialization;
// New binds a client to the shared table without re-validating, so
// per-request construction stays cheap.
var (
	handlerTable    = buildHandlers()
	handlerTableErr = validateHandlers(handlerTable)
)

func validateHandlers(h map[key]handler) error {
	for resource, actions := range supported {
		for _, action := range actions {
			if _, ok := h[key{resource, action}]; !ok {
				return op.Executionf("no handler for %s.%s", resource, action)
			}
		}
	}
	return nil
}

// New builds an executor over the given client.
func New(cms CMS) (*Executor, error) {
	if handlerTableErr != nil {
		return nil, handlerTableErr
	}
	return &Executor{cms: cms, handlers: handlerTable}, nil
}

// Execute runs one canonical operation and returns the raw JSON result.
// The publish-status policy is applied here as well, so REST-shaped
// operations that bypassed the resolver still get it.
func (e *Executor) Execute(ctx context.Context, o op.Operation) (json.RawMessage, error) {
	switch {
	case o.Rest != nil:
		r := *o.Rest
		r.ApplyPublishPolicy()
		return e.cms.Request(ctx, strings.ToLower(r.Method), r.Endpoint, r.Data, r.Params)
	case o.Intent != nil:
		i := *o.Intent
		i.ApplyPublishPolicy()
		return e.executeIntent(ctx, i)
	}
	return nil, op.Executionf("empty operation")
}

func (e *Executor) executeIntent(ctx context.Context, i op.Intent) (json.RawMessage, error) {
	if h, ok := e.handlers[key{i.Resource, i.Action}]; ok {
		return h(ctx, e.cms, i)
	}
	if _, known := supported[i.Resource]; known {
		return nil, op.Executionf("unsupported action %q for %s", i.Action, i.Resource)
	}
	return e.executeCustomType(ctx, i)
}

// executeCustomType handles resources outside the fixed set as custom post
// types keyed by the resource name.
func (e *Executor) executeCustomType(ctx context.Context, i op.Intent) (json.RawMessage, error) {
	switch i.Action {
	case op.ActionGet:
		return e.cms.GetCustomPosts(ctx, i.Resource, nil)
	case op.ActionGetByID:
		id, err := requireID(i)
		if err != nil {
			return nil, err
		}
		return e.cms.GetCustomPost(ctx, i.Resource, id)
	case op.ActionCreate:
		return e.cms.CreateCustomPost(ctx, i.Resource, entityData(i.Resource, i.Entities))
	case op.ActionUpdate:
		id, err := requireID(i)
		if err != nil {
			return nil, err
		}
		return e.cms.UpdateCustomPost(ctx, i.Resource, id, entityData(i.Resource, i.Entities))
	case op.ActionDelete:
		id, err := requireID(i)
		if err != nil {
			return nil, err
		}
		return e.cms.DeleteCustomPost(ctx, i.Resource, id)
	}
	return nil, op.Executionf("unsupported action %q for %s", i.Action, i.Resource)
}

// requireID enforces that id-addressed actions carry an id entity.
func requireID(i op.Intent) (string, error) {
	id := strings.TrimSpace(i.Entities["id"])
	if id == "" {
		return "", op.Executionf("%s %s requires an id", i.Action, i.Resource)
	}
	return id, nil
}

// requirePlugin enforces that plugin actions carry a plugin slug.
func requirePlugin(i op.Intent) (string, error) {
	p := strings.TrimSpace(i.Entities["plugin"])
	if p == "" {
		return "", op.Executionf("%s requires a plugin name", i.Action)
	}
	return p, nil
}

// entityData converts classifier slots into a request body. Slots that
// address the resource (id, plugin, file) never travel in the body. The
// name slot becomes the title for title-bearing resources.
func entityData(resource string, entities map[string]string) map[string]any {
	data := map[string]any{}
	for k, v := range entities {
		switch k {
		case "id", "plugin", "file":
		case "name":
			switch resource {
			case "posts", "pages", "media":
				data["title"] = v
			default:
				data["name"] = v
			}
		default:
			data[k] = v
		}
	}
	return data
}

// uploadFromEntities opens the file named by the file slot and streams it
// to the media library.
func uploadFromEntities(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
	path := strings.TrimSpace(i.Entities["file"])
	if path == "" {
		return nil, op.Executionf("upload requires a file")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, op.Executionf("opening %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	return c.UploadMedia(ctx, filepath.Base(path), f, i.Entities["name"])
}
