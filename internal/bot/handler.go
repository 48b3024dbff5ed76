// Package bot provides the handler interface and event processing for
// the LINE bot. Handlers match exact menu commands or structured
// postback actions and return the messages to reply with.
package bot

import (
	"context"
	"net/url"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Handler is implemented by each bot module.
type Handler interface {
	// Name identifies the handler in logs.
	Name() string

	// CanHandle checks if this handler recognizes the given text command.
	CanHandle(text string) bool

	// HandleMessage processes a recognized text command.
	// Returns the messages to reply with (max 5 per reply).
	HandleMessage(ctx context.Context, text string) []messaging_api.MessageInterface

	// CanHandleAction checks if this handler owns the postback action.
	// Postback data uses query-string encoding, e.g. "action=detail&id=X".
	CanHandleAction(action string) bool

	// HandlePostback processes a postback with its decoded parameters.
	HandlePostback(ctx context.Context, action string, params url.Values) []messaging_api.MessageInterface
}
