package wp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Typed convenience methods per resource. Each delegates to do() with the
// operation named for error context. Menus live under the wp-api-menus
// plugin namespace rather than wp/v2; plugins and settings require the
// corresponding REST extensions on the site.

// Posts

func (c *Client) GetPosts(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/posts", nil, params, "get posts")
}

func (c *Client) GetPost(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/posts/"+id, nil, nil, "get post "+id)
}

func (c *Client) CreatePost(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.base+"/posts", data, nil, "create post")
}

func (c *Client) UpdatePost(ctx context.Context, id string, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/posts/"+id, data, nil, "update post "+id)
}

func (c *Client) DeletePost(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.base+"/posts/"+id, nil, nil, "delete post "+id)
}

// Pages

func (c *Client) GetPages(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/pages", nil, params, "get pages")
}

func (c *Client) GetPage(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/pages/"+id, nil, nil, "get page "+id)
}

func (c *Client) CreatePage(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.base+"/pages", data, nil, "create page")
}

func (c *Client) UpdatePage(ctx context.Context, id string, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/pages/"+id, data, nil, "update page "+id)
}

func (c *Client) DeletePage(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.base+"/pages/"+id, nil, nil, "delete page "+id)
}

// Media

func (c *Client) GetMedia(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/media", nil, params, "get media")
}

func (c *Client) GetMediaItem(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/media/"+id, nil, nil, "get media "+id)
}

func (c *Client) DeleteMedia(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.base+"/media/"+id, nil, nil, "delete media "+id)
}

// Users

func (c *Client) GetUsers(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/users", nil, params, "get users")
}

func (c *Client) GetUser(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/users/"+id, nil, nil, "get user "+id)
}

func (c *Client) CreateUser(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.base+"/users", data, nil, "create user")
}

func (c *Client) UpdateUser(ctx context.Context, id string, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/users/"+id, data, nil, "update user "+id)
}

// DeleteUser removes a user. WordPress requires reassigning their content;
// an empty reassign forces deletion of the content as well.
func (c *Client) DeleteUser(ctx context.Context, id, reassign string) (json.RawMessage, error) {
	params := map[string]any{"force": true}
	if reassign != "" {
		params["reassign"] = reassign
	}
	return c.do(ctx, http.MethodDelete, c.base+"/users/"+id, nil, params, "delete user "+id)
}

// Categories

func (c *Client) GetCategories(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/categories", nil, params, "get categories")
}

func (c *Client) GetCategory(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/categories/"+id, nil, nil, "get category "+id)
}

func (c *Client) CreateCategory(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.base+"/categories", data, nil, "create category")
}

func (c *Client) UpdateCategory(ctx context.Context, id string, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/categories/"+id, data, nil, "update category "+id)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.base+"/categories/"+id, nil, nil, "delete category "+id)
}

// Tags

func (c *Client) GetTags(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/tags", nil, params, "get tags")
}

func (c *Client) GetTag(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/tags/"+id, nil, nil, "get tag "+id)
}

func (c *Client) CreateTag(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.base+"/tags", data, nil, "create tag")
}

func (c *Client) UpdateTag(ctx context.Context, id string, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/tags/"+id, data, nil, "update tag "+id)
}

func (c *Client) DeleteTag(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.base+"/tags/"+id, nil, nil, "delete tag "+id)
}

// Comments

func (c *Client) GetComments(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/comments", nil, params, "get comments")
}

func (c *Client) GetComment(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/comments/"+id, nil, nil, "get comment "+id)
}

func (c *Client) CreateComment(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.base+"/comments", data, nil, "create comment")
}

func (c *Client) UpdateComment(ctx context.Context, id string, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/comments/"+id, data, nil, "update comment "+id)
}

func (c *Client) DeleteComment(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.base+"/comments/"+id, nil, nil, "delete comment "+id)
}

// Menus (wp-api-menus plugin namespace, unauthenticated reads)

func (c *Client) GetMenus(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.root+"/wp-json/wp-api-menus/v2/menus", nil, nil, "get menus")
}

func (c *Client) GetMenu(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.root+"/wp-json/wp-api-menus/v2/menus/"+id, nil, nil, "get menu "+id)
}

// Plugins (requires the plugins REST extension)

func (c *Client) GetPlugins(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/plugins", nil, nil, "get plugins")
}

func (c *Client) GetPlugin(ctx context.Context, plugin string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/plugins/"+plugin, nil, nil, "get plugin "+plugin)
}

func (c *Client) ActivatePlugin(ctx context.Context, plugin string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/plugins/"+plugin,
		map[string]any{"status": "active"}, nil, "activate plugin "+plugin)
}

func (c *Client) DeactivatePlugin(ctx context.Context, plugin string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/plugins/"+plugin,
		map[string]any{"status": "inactive"}, nil, "deactivate plugin "+plugin)
}

// Settings (requires the settings REST extension)

func (c *Client) GetSettings(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/settings", nil, nil, "get settings")
}

func (c *Client) UpdateSettings(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/settings", data, nil, "update settings")
}

// Custom post types, keyed by an arbitrary registered type string.

func (c *Client) GetCustomPosts(ctx context.Context, typ string, params map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/"+typ, nil, params, "get "+typ)
}

func (c *Client) GetCustomPost(ctx context.Context, typ, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.base+"/"+typ+"/"+id, nil, nil, fmt.Sprintf("get %s %s", typ, id))
}

func (c *Client) CreateCustomPost(ctx context.Context, typ string, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.base+"/"+typ, data, nil, "create "+typ)
}

func (c *Client) UpdateCustomPost(ctx context.Context, typ, id string, data map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.base+"/"+typ+"/"+id, data, nil, fmt.Sprintf("update %s %s", typ, id))
}

func (c *Client) DeleteCustomPost(ctx context.Context, typ, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.base+"/"+typ+"/"+id, nil, nil, fmt.Sprintf("delete %s %s", typ, id))
}
