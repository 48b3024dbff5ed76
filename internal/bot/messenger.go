package bot

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Messenger is the subset of the LINE messaging client the bot needs.
// *messaging_api.MessagingApiAPI satisfies it; tests use a fake.
type Messenger interface {
	ReplyMessage(req *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
	PushMessage(req *messaging_api.PushMessageRequest, xLineRetryKey string) (*messaging_api.PushMessageResponse, error)
}

// LoadingNotifier signals "processing" to a chat without blocking.
type LoadingNotifier interface {
	Notify(chatID string, seconds int)
}
