package forms

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/chungli-bot/house-linebot-go/internal/bot/listing"
	"github.com/chungli-bot/house-linebot-go/internal/housing"
	"github.com/chungli-bot/house-linebot-go/internal/lineutil"
	"github.com/chungli-bot/house-linebot-go/internal/store"
)

// maxSearchResults caps the pushed carousel at the LINE bubble limit.
const maxSearchResults = 10

type searchRequest struct {
	UserID string `json:"user_id" form:"user_id"`
	Budget string `json:"budget" form:"budget"`
	Room   string `json:"room" form:"room"`
	Genre  string `json:"genre" form:"genre"`
}

// SubmitSearch queries listings by room and genre, filters by budget in
// process, and pushes the results to the requester.
func (h *Handlers) SubmitSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respond(c, "search", http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid payload"})
		return
	}
	if req.UserID == "" {
		h.respond(c, "search", http.StatusBadRequest, statusResponse{Status: "error", Message: "❌ 缺少 user_id"})
		return
	}

	log := h.logger.WithField("user_id", req.UserID)

	query := store.ListingQuery{Genre: req.Genre}
	// room 0 means any.
	if req.Room != "" && req.Room != "0" {
		room, err := strconv.Atoi(req.Room)
		if err != nil {
			h.respond(c, "search", http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid room"})
			return
		}
		query.Room = &room
	}

	listings, err := h.store.QueryListings(c.Request.Context(), query)
	if err != nil {
		log.WithError(err).Error("Failed to query listings")
		h.respond(c, "search", http.StatusBadRequest, statusResponse{Status: "error", Message: err.Error()})
		return
	}

	bound := housing.ParseBudget(req.Budget)
	if strings.TrimSpace(req.Budget) != "" && bound.IsZero() {
		log.WithField("budget", req.Budget).Warn("Unparsable budget, ignoring constraint")
	}
	listings = housing.FilterByBudget(listings, bound)
	log.WithField("match_count", len(listings)).Info("Search results filtered")

	var msg messaging_api.MessageInterface
	if len(listings) == 0 {
		msg = lineutil.NewFlexMessage("搜尋結果", listing.NoResultBubble().FlexBubble)
	} else {
		if len(listings) > maxSearchResults {
			listings = listings[:maxSearchResults]
		}
		bubbles := make([]messaging_api.FlexBubble, 0, len(listings))
		for _, l := range listings {
			bubbles = append(bubbles, listing.Bubble(l, h.cfg.ShareURL(l.ID)))
		}
		msg = lineutil.NewFlexMessage("搜尋結果", lineutil.NewFlexCarousel(bubbles))
	}

	if _, err := h.client.PushMessage(&messaging_api.PushMessageRequest{
		To:       req.UserID,
		Messages: []messaging_api.MessageInterface{msg},
	}, ""); err != nil {
		log.WithError(err).Error("Failed to push search results")
		h.respond(c, "search", http.StatusBadRequest, statusResponse{Status: "error", Message: err.Error()})
		return
	}

	h.respond(c, "search", http.StatusOK, statusResponse{Status: "ok"})
}
