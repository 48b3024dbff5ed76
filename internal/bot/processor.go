package bot

import (
	"context"
	"net/url"
	"strings"

	"github.com/chungli-bot/house-linebot-go/internal/ctxutil"
	apperrors "github.com/chungli-bot/house-linebot-go/internal/errors"
	"github.com/chungli-bot/house-linebot-go/internal/lineutil"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// welcomeText greets a new follower and points at the rich menu.
const welcomeText = "我可以協助你：\n" +
	"✔ 快速尋找適合的物件\n" +
	"✔ 新上架 24hr 搶先通知\n\n" +
	"請點下方【精選推薦】"

// Processor classifies decoded webhook events and dispatches them to
// the registered handlers. Unmatched text is a silent no-op.
type Processor struct {
	registry *Registry
	notifier LoadingNotifier
	logger   *logger.Logger
}

// ProcessorConfig holds configuration for creating a new Processor.
type ProcessorConfig struct {
	Registry *Registry
	Notifier LoadingNotifier
	Logger   *logger.Logger
}

// NewProcessor creates a new event processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	return &Processor{
		registry: cfg.Registry,
		notifier: cfg.Notifier,
		logger:   cfg.Logger.WithModule("bot"),
	}
}

// ProcessMessage handles a text message event. Commands are matched
// exactly; anything unrecognized gets no reply.
func (p *Processor) ProcessMessage(ctx context.Context, event webhook.MessageEvent) ([]messaging_api.MessageInterface, error) {
	if event.Message.GetType() != "text" {
		return nil, nil
	}
	textMsg, ok := event.Message.(webhook.TextMessageContent)
	if !ok {
		return nil, nil
	}

	text := strings.TrimSpace(textMsg.Text)
	if text == "" {
		return nil, nil
	}

	ctx = ctxutil.WithChatID(ctx, GetChatID(event.Source))
	ctx = ctxutil.WithUserID(ctx, GetUserID(event.Source))

	return p.registry.DispatchMessage(ctx, text), nil
}

// ProcessPostback handles a postback event. Data is query-string
// encoded; malformed or unowned actions are ignored.
func (p *Processor) ProcessPostback(ctx context.Context, event webhook.PostbackEvent) ([]messaging_api.MessageInterface, error) {
	data := strings.TrimSpace(event.Postback.Data)
	if data == "" {
		return nil, nil
	}
	if len(data) > lineutil.MaxPostbackData {
		p.logger.WithError(apperrors.ErrInvalidInput).WithField("bytes", len(data)).Warnf("postback data too long")
		return nil, nil
	}

	params, err := url.ParseQuery(data)
	if err != nil {
		p.logger.WithError(err).Warnf("undecodable postback data")
		return nil, nil
	}
	action := params.Get("action")
	if action == "" {
		return nil, nil
	}

	// Detail lookups hit the store; show the typing indicator in
	// personal chats while the card is built. A detail postback
	// without an id answers immediately, so no indicator for it.
	if action == "detail" && params.Get("id") != "" && p.notifier != nil && IsPersonalChat(event.Source) {
		p.notifier.Notify(GetChatID(event.Source), 5)
	}

	ctx = ctxutil.WithChatID(ctx, GetChatID(event.Source))
	ctx = ctxutil.WithUserID(ctx, GetUserID(event.Source))

	return p.registry.DispatchPostback(ctx, action, params), nil
}

// ProcessFollow handles a follow event with a welcome message and the
// main quick-reply shortcuts.
func (p *Processor) ProcessFollow(event webhook.FollowEvent) ([]messaging_api.MessageInterface, error) {
	p.logger.WithField("user_id", GetUserID(event.Source)).Infof("new follower")

	msg := lineutil.NewTextMessageWithQuickReply(welcomeText,
		lineutil.QuickReplyItem{Action: lineutil.NewMessageAction("立即找房", "立即找房")},
		lineutil.QuickReplyItem{Action: lineutil.NewMessageAction("委託賣房", "委託賣房")},
	)
	return []messaging_api.MessageInterface{msg}, nil
}
