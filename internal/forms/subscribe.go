package forms

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/chungli-bot/house-linebot-go/internal/bot/listing"
	"github.com/chungli-bot/house-linebot-go/internal/housing"
	"github.com/chungli-bot/house-linebot-go/internal/lineutil"
)

type subscribeRequest struct {
	UserID string `json:"user_id" form:"user_id"`
	Budget string `json:"budget" form:"budget"`
	Room   string `json:"room" form:"room"`
	Genre  string `json:"genre" form:"genre"`
}

// SubmitForm upserts a user's subscription conditions and pushes the
// updated condition card. The first submission and later updates get
// different alt texts.
func (h *Handlers) SubmitForm(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respond(c, "subscribe", http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid payload"})
		return
	}
	if req.UserID == "" {
		h.respond(c, "subscribe", http.StatusBadRequest, statusResponse{Status: "error", Message: "missing user_id"})
		return
	}

	log := h.logger.WithField("user_id", req.UserID)

	created, err := h.store.SetPreference(c.Request.Context(), req.UserID, &housing.Preference{
		UserID: req.UserID,
		Budget: req.Budget,
		Room:   req.Room,
		Genre:  req.Genre,
	})
	if err != nil {
		log.WithError(err).Error("Failed to save subscription conditions")
		h.respond(c, "subscribe", http.StatusInternalServerError, statusResponse{Status: "error", Message: err.Error()})
		return
	}

	altText := "條件已更新"
	if created {
		altText = "🎉 追蹤成功！"
	}

	card := listing.ConditionCard(req.Budget, req.Room, req.Genre, h.cfg.SubscribeURL())
	if _, err := h.client.PushMessage(&messaging_api.PushMessageRequest{
		To:       req.UserID,
		Messages: []messaging_api.MessageInterface{lineutil.NewFlexMessage(altText, card.FlexBubble)},
	}, ""); err != nil {
		log.WithError(err).Error("Failed to push condition card")
		h.respond(c, "subscribe", http.StatusInternalServerError, statusResponse{Status: "error", Message: err.Error()})
		return
	}

	log.WithField("created", created).Info("Subscription conditions saved")
	h.respond(c, "subscribe", http.StatusOK, statusResponse{Status: "success"})
}
