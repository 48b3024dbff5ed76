// Package webhook verifies LINE webhook signatures and dispatches the
// decoded events to the bot processor.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/chungli-bot/house-linebot-go/internal/bot"
	"github.com/chungli-bot/house-linebot-go/internal/ctxutil"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/metrics"
	"github.com/chungli-bot/house-linebot-go/internal/ratelimit"
)

// LINE API constraints.
const (
	maxMessagesPerReply = 5
	maxEventsPerWebhook = 100
	minReplyTokenLength = 16
)

// Handler handles LINE webhook callbacks.
type Handler struct {
	channelSecret string
	client        bot.Messenger
	metrics       *metrics.Metrics
	logger        *logger.Logger
	processor     *bot.Processor
	rateLimiter   *ratelimit.Limiter
	wg            sync.WaitGroup
}

// HandlerConfig holds configuration for creating a new Handler.
type HandlerConfig struct {
	ChannelSecret string
	Client        bot.Messenger
	Metrics       *metrics.Metrics
	Logger        *logger.Logger
	Processor     *bot.Processor
	RateLimitRPS  float64
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		channelSecret: cfg.ChannelSecret,
		client:        cfg.Client,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger.WithModule("webhook"),
		processor:     cfg.Processor,
		rateLimiter:   ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitRPS),
	}
}

// Handle is the Gin handler for the webhook endpoint.
func (h *Handler) Handle(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("Invalid webhook signature")
			c.Status(http.StatusBadRequest)
		} else {
			h.logger.WithError(err).Error("Failed to parse webhook request")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	// LINE expects an immediate 200; events are processed after the
	// response is written.
	c.String(http.StatusOK, "OK")

	start := time.Now()
	h.metrics.RecordWebhook("batch", "received", 0)

	if len(cb.Events) > maxEventsPerWebhook {
		h.logger.WithField("event_count", len(cb.Events)).Warn("Too many events in webhook batch; truncating")
		cb.Events = cb.Events[:maxEventsPerWebhook]
	}

	// Copy events so the batch survives the HTTP response lifecycle.
	events := make([]webhook.EventInterface, len(cb.Events))
	copy(events, cb.Events)

	// Keep tracing values from the request but detach its cancellation:
	// the server cancels the request context as soon as the 200 is
	// written, while event processing is still running.
	ctx := ctxutil.PreserveTracing(c.Request.Context())

	h.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.WithField("panic", r).Error("Panic in async event processing")
			}
		}()

		for _, event := range events {
			h.processEvent(ctx, event, start)
		}
	})
}

// processEvent handles a single webhook event asynchronously.
func (h *Handler) processEvent(ctx context.Context, event webhook.EventInterface, batchStart time.Time) {
	eventStart := time.Now()
	var messages []messaging_api.MessageInterface
	var eventType string
	var err error

	eventID, isRedelivery := extractEventMeta(event)
	log := h.logger
	if eventID != "" {
		ctx = ctxutil.WithRequestID(ctx, eventID)
		log = log.WithRequestID(eventID)
	}
	if isRedelivery != nil {
		log = log.WithField("is_redelivery", *isRedelivery)
	}

	switch e := event.(type) {
	case webhook.MessageEvent:
		eventType = "message"
		messages, err = h.processor.ProcessMessage(ctx, e)
	case webhook.PostbackEvent:
		eventType = "postback"
		messages, err = h.processor.ProcessPostback(ctx, e)
	case webhook.FollowEvent:
		eventType = "follow"
		messages, err = h.processor.ProcessFollow(e)
	default:
		log.WithField("event_type", fmt.Sprintf("%T", e)).Debug("Unsupported event type")
		return
	}

	durationSeconds := time.Since(eventStart).Seconds()
	status := "success"
	if err != nil {
		status = "error"
		log.WithError(err).WithField("event_type", eventType).Error("Failed to handle event")
	}
	h.metrics.RecordWebhook(eventType, status, durationSeconds)

	if len(messages) > 0 && err == nil {
		if len(messages) > maxMessagesPerReply {
			log.WithField("message_count", len(messages)).Warn("Message count exceeds reply limit; truncating")
			messages = messages[:maxMessagesPerReply]
		}

		replyToken := h.getReplyToken(event)
		if replyToken == "" {
			log.Debug("Empty reply token, skipping reply")
			return
		}
		if len(replyToken) < minReplyTokenLength {
			log.WithField("token_length", len(replyToken)).Debug("Invalid reply token format")
			return
		}

		if !h.rateLimiter.Allow() {
			log.Warn("Global rate limit exceeded; waiting")
			h.metrics.RecordRateLimiterDrop("global")
			h.rateLimiter.WaitSimple()
		}

		if _, err := h.client.ReplyMessage(
			&messaging_api.ReplyMessageRequest{
				ReplyToken: replyToken,
				Messages:   messages,
			},
		); err != nil {
			if strings.Contains(err.Error(), "Invalid reply token") {
				log.WithError(err).Debug("Reply token already used or invalid")
			} else {
				log.WithError(err).Error("Failed to send reply")
			}
			h.metrics.RecordWebhook(eventType, "reply_error", time.Since(eventStart).Seconds())
		}
	}

	log.WithField("event_type", eventType).
		WithField("event_duration_ms", time.Since(eventStart).Milliseconds()).
		WithField("batch_duration_ms", time.Since(batchStart).Milliseconds()).
		Info("Event processed")
}

func extractEventMeta(event webhook.EventInterface) (string, *bool) {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return e.WebhookEventId, redelivered(e.DeliveryContext)
	case webhook.PostbackEvent:
		return e.WebhookEventId, redelivered(e.DeliveryContext)
	case webhook.FollowEvent:
		return e.WebhookEventId, redelivered(e.DeliveryContext)
	default:
		return "", nil
	}
}

func redelivered(ctx *webhook.DeliveryContext) *bool {
	if ctx == nil {
		return nil
	}
	val := ctx.IsRedelivery
	return &val
}

func (h *Handler) getReplyToken(event webhook.EventInterface) string {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return e.ReplyToken
	case webhook.PostbackEvent:
		return e.ReplyToken
	case webhook.FollowEvent:
		return e.ReplyToken
	default:
		return ""
	}
}

// Shutdown waits for all async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	c := make(chan struct{})
	go func() {
		defer close(c)
		h.wg.Wait()
	}()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
