package bot

import (
	"context"
	"net/url"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Registry manages bot handlers and dispatches messages and postbacks.
type Registry struct {
	handlers []Handler
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make([]Handler, 0),
	}
}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) {
	r.handlers = append(r.handlers, h)
}

// DispatchMessage dispatches a text command to the first handler that
// can handle it. Returns nil when no handler matches.
func (r *Registry) DispatchMessage(ctx context.Context, text string) []messaging_api.MessageInterface {
	for _, h := range r.handlers {
		if h.CanHandle(text) {
			return h.HandleMessage(ctx, text)
		}
	}
	return nil
}

// DispatchPostback dispatches a postback to the handler owning the action.
func (r *Registry) DispatchPostback(ctx context.Context, action string, params url.Values) []messaging_api.MessageInterface {
	for _, h := range r.handlers {
		if h.CanHandleAction(action) {
			return h.HandlePostback(ctx, action, params)
		}
	}
	return nil
}
