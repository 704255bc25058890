package executor

import (
	"context"
	"encoding/json"

	"wpagent/internal/op"
)

type key struct {
	resource string
	action   string
}

type handler func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error)

// supported enumerates the fixed resource set and the actions each one
// accepts. New verifies the handler table against it; anything outside the
// set falls through to the custom post type handler.
var supported = map[string][]string{
	"posts":      {op.ActionGet, op.ActionGetByID, op.ActionCreate, op.ActionUpdate, op.ActionDelete},
	"pages":      {op.ActionGet, op.ActionGetByID, op.ActionCreate, op.ActionUpdate, op.ActionDelete},
	"media":      {op.ActionGet, op.ActionGetByID, op.ActionUpload, op.ActionDelete},
	"users":      {op.ActionGet, op.ActionGetByID, op.ActionCreate, op.ActionUpdate, op.ActionDelete},
	"categories": {op.ActionGet, op.ActionGetByID, op.ActionCreate, op.ActionUpdate, op.ActionDelete},
	"tags":       {op.ActionGet, op.ActionGetByID, op.ActionCreate, op.ActionUpdate, op.ActionDelete},
	"comments":   {op.ActionGet, op.ActionGetByID, op.ActionCreate, op.ActionUpdate, op.ActionDelete},
	"menus":      {op.ActionGet, op.ActionGetByID},
	"plugins":    {op.ActionGet, op.ActionGetByName, op.ActionActivate, op.ActionDeactivate},
	"settings":   {op.ActionGet, op.ActionUpdate},
}

func buildHandlers() map[key]handler {
	h := map[key]handler{}

	h[key{"posts", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetPosts(ctx, nil)
	}
	h[key{"posts", op.ActionGetByID}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.GetPost(ctx, id)
	})
	h[key{"posts", op.ActionCreate}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.CreatePost(ctx, entityData(i.Resource, i.Entities))
	}
	h[key{"posts", op.ActionUpdate}] = byIDData(func(ctx context.Context, c CMS, id string, data map[string]any) (json.RawMessage, error) {
		return c.UpdatePost(ctx, id, data)
	})
	h[key{"posts", op.ActionDelete}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.DeletePost(ctx, id)
	})

	h[key{"pages", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetPages(ctx, nil)
	}
	h[key{"pages", op.ActionGetByID}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.GetPage(ctx, id)
	})
	h[key{"pages", op.ActionCreate}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.CreatePage(ctx, entityData(i.Resource, i.Entities))
	}
	h[key{"pages", op.ActionUpdate}] = byIDData(func(ctx context.Context, c CMS, id string, data map[string]any) (json.RawMessage, error) {
		return c.UpdatePage(ctx, id, data)
	})
	h[key{"pages", op.ActionDelete}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.DeletePage(ctx, id)
	})

	h[key{"media", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetMedia(ctx, nil)
	}
	h[key{"media", op.ActionGetByID}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.GetMediaItem(ctx, id)
	})
	h[key{"media", op.ActionUpload}] = uploadFromEntities
	h[key{"media", op.ActionDelete}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.DeleteMedia(ctx, id)
	})

	h[key{"users", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetUsers(ctx, nil)
	}
	h[key{"users", op.ActionGetByID}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.GetUser(ctx, id)
	})
	h[key{"users", op.ActionCreate}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.CreateUser(ctx, entityData(i.Resource, i.Entities))
	}
	h[key{"users", op.ActionUpdate}] = byIDData(func(ctx context.Context, c CMS, id string, data map[string]any) (json.RawMessage, error) {
		return c.UpdateUser(ctx, id, data)
	})
	h[key{"users", op.ActionDelete}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		id, err := requireID(i)
		if err != nil {
			return nil, err
		}
		return c.DeleteUser(ctx, id, i.Entities["reassign"])
	}

	h[key{"categories", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetCategories(ctx, nil)
	}
	h[key{"categories", op.ActionGetByID}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.GetCategory(ctx, id)
	})
	h[key{"categories", op.ActionCreate}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.CreateCategory(ctx, entityData(i.Resource, i.Entities))
	}
	h[key{"categories", op.ActionUpdate}] = byIDData(func(ctx context.Context, c CMS, id string, data map[string]any) (json.RawMessage, error) {
		return c.UpdateCategory(ctx, id, data)
	})
	h[key{"categories", op.ActionDelete}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.DeleteCategory(ctx, id)
	})

	h[key{"tags", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetTags(ctx, nil)
	}
	h[key{"tags", op.ActionGetByID}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.GetTag(ctx, id)
	})
	h[key{"tags", op.ActionCreate}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.CreateTag(ctx, entityData(i.Resource, i.Entities))
	}
	h[key{"tags", op.ActionUpdate}] = byIDData(func(ctx context.Context, c CMS, id string, data map[string]any) (json.RawMessage, error) {
		return c.UpdateTag(ctx, id, data)
	})
	h[key{"tags", op.ActionDelete}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.DeleteTag(ctx, id)
	})

	h[key{"comments", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetComments(ctx, nil)
	}
	h[key{"comments", op.ActionGetByID}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.GetComment(ctx, id)
	})
	h[key{"comments", op.ActionCreate}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.CreateComment(ctx, entityData(i.Resource, i.Entities))
	}
	h[key{"comments", op.ActionUpdate}] = byIDData(func(ctx context.Context, c CMS, id string, data map[string]any) (json.RawMessage, error) {
		return c.UpdateComment(ctx, id, data)
	})
	h[key{"comments", op.ActionDelete}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.DeleteComment(ctx, id)
	})

	h[key{"menus", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetMenus(ctx)
	}
	h[key{"menus", op.ActionGetByID}] = byID(func(ctx context.Context, c CMS, id string) (json.RawMessage, error) {
		return c.GetMenu(ctx, id)
	})

	h[key{"plugins", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetPlugins(ctx)
	}
	h[key{"plugins", op.ActionGetByName}] = byPlugin(func(ctx context.Context, c CMS, plugin string) (json.RawMessage, error) {
		return c.GetPlugin(ctx, plugin)
	})
	h[key{"plugins", op.ActionActivate}] = byPlugin(func(ctx context.Context, c CMS, plugin string) (json.RawMessage, error) {
		return c.ActivatePlugin(ctx, plugin)
	})
	h[key{"plugins", op.ActionDeactivate}] = byPlugin(func(ctx context.Context, c CMS, plugin string) (json.RawMessage, error) {
		return c.DeactivatePlugin(ctx, plugin)
	})

	h[key{"settings", op.ActionGet}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.GetSettings(ctx)
	}
	h[key{"settings", op.ActionUpdate}] = func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		return c.UpdateSettings(ctx, entityData(i.Resource, i.Entities))
	}

	return h
}

// byID adapts a single-id client method into a handler with the id check.
func byID(fn func(ctx context.Context, c CMS, id string) (json.RawMessage, error)) handler {
	return func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		id, err := requireID(i)
		if err != nil {
			return nil, err
		}
		return fn(ctx, c, id)
	}
}

// byIDData adapts an id+body client method into a handler.
func byIDData(fn func(ctx context.Context, c CMS, id string, data map[string]any) (json.RawMessage, error)) handler {
	return func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		id, err := requireID(i)
		if err != nil {
			return nil, err
		}
		return fn(ctx, c, id, entityData(i.Resource, i.Entities))
	}
}

// byPlugin adapts a plugin-slug client method into a handler.
func byPlugin(fn func(ctx context.Context, c CMS, plugin string) (json.RawMessage, error)) handler {
	return func(ctx context.Context, c CMS, i op.Intent) (json.RawMessage, error) {
		plugin, err := requirePlugin(i)
		if err != nil {
			return nil, err
		}
		return fn(ctx, c, plugin)
	}
}
