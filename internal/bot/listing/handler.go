// Package listing implements the housing bot module: menu commands,
// curated picks, and the listing detail postback backed by a TTL cache.
package listing

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"golang.org/x/sync/singleflight"

	"github.com/chungli-bot/house-linebot-go/internal/cache"
	"github.com/chungli-bot/house-linebot-go/internal/config"
	"github.com/chungli-bot/house-linebot-go/internal/ctxutil"
	apperrors "github.com/chungli-bot/house-linebot-go/internal/errors"
	"github.com/chungli-bot/house-linebot-go/internal/housing"
	"github.com/chungli-bot/house-linebot-go/internal/lineutil"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/metrics"
	"github.com/chungli-bot/house-linebot-go/internal/store"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Menu commands, matched exactly after trimming.
const (
	cmdTopPicks  = "中壢夜市生活圈精選"
	cmdSell      = "委託賣房"
	cmdSearch    = "立即找房"
	cmdIntro     = "你的介紹"
	cmdCondition = "管理我的追蹤條件"
)

const topPicksLimit = 5

var commands = []string{cmdTopPicks, cmdSell, cmdSearch, cmdIntro, cmdCondition}

// Handler serves the listing menu commands and detail postbacks.
type Handler struct {
	store   store.Store
	cache   *cache.Cache[string, housing.Listing]
	group   singleflight.Group
	cfg     *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewHandler creates the listing bot module.
func NewHandler(s store.Store, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		store:   s,
		cache:   cache.New[string, housing.Listing](cfg.DetailCacheSize, cfg.DetailCacheTTL),
		cfg:     cfg,
		logger:  log.WithModule("listing"),
		metrics: m,
	}
}

// Name returns the handler name.
func (h *Handler) Name() string { return "listing" }

// CanHandle reports whether text is one of the menu commands.
func (h *Handler) CanHandle(text string) bool {
	return slices.Contains(commands, text)
}

// HandleMessage serves a menu command.
func (h *Handler) HandleMessage(ctx context.Context, text string) []messaging_api.MessageInterface {
	switch text {
	case cmdTopPicks:
		return h.topPicks(ctx)
	case cmdSell:
		return []messaging_api.MessageInterface{lineutil.NewTextMessage(SellerText())}
	case cmdSearch:
		card := SearchCard(h.cfg.SearchURL())
		return []messaging_api.MessageInterface{lineutil.NewFlexMessage("立即找房", card.FlexBubble)}
	case cmdIntro:
		return []messaging_api.MessageInterface{lineutil.NewFlexMessage("自我介紹", IntroCard())}
	case cmdCondition:
		return h.manageCondition(ctx)
	}
	return nil
}

// CanHandleAction reports whether this module owns the postback action.
func (h *Handler) CanHandleAction(action string) bool {
	return action == "detail"
}

// HandlePostback serves the listing detail postback.
func (h *Handler) HandlePostback(ctx context.Context, action string, params url.Values) []messaging_api.MessageInterface {
	if action != "detail" {
		return nil
	}
	id := params.Get("id")
	if id == "" {
		h.logger.Warn("detail postback without listing id")
		return []messaging_api.MessageInterface{lineutil.NewTextMessage("❌ 找不到物件資訊")}
	}
	return h.detail(ctx, id)
}

func (h *Handler) topPicks(ctx context.Context) []messaging_api.MessageInterface {
	top := true
	listings, err := h.store.QueryListings(ctx, store.ListingQuery{Top: &top, Limit: topPicksLimit})
	if err != nil {
		h.logger.WithError(err).Errorf("query top picks")
		return []messaging_api.MessageInterface{lineutil.NewTextMessage("目前沒有精選物件 🙏")}
	}

	bubbles := make([]messaging_api.FlexBubble, 0, len(listings))
	for _, l := range listings {
		bubbles = append(bubbles, Bubble(l, h.cfg.ShareURL(l.ID)))
	}
	if len(bubbles) == 0 {
		return []messaging_api.MessageInterface{lineutil.NewTextMessage("目前沒有精選物件 🙏")}
	}

	return []messaging_api.MessageInterface{
		lineutil.NewFlexMessage("精選物件", lineutil.NewFlexCarousel(bubbles)),
	}
}

func (h *Handler) manageCondition(ctx context.Context) []messaging_api.MessageInterface {
	userID := ctxutil.GetUserID(ctx)
	if userID == "" {
		return nil
	}

	pref, err := h.store.GetPreference(ctx, userID)
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		card := BuyerCard(h.cfg.SubscribeURL())
		return []messaging_api.MessageInterface{lineutil.NewFlexMessage("需求條件", card.FlexBubble)}
	case err != nil:
		h.logger.WithError(err).WithField("user_id", userID).Errorf("read preference")
		return []messaging_api.MessageInterface{lineutil.NewTextMessage("❌ 系統暫時無法處理您的請求，請稍後再試")}
	}

	card := ConditionCard(pref.Budget, pref.Room, pref.Genre, h.cfg.SubscribeURL())
	return []messaging_api.MessageInterface{lineutil.NewFlexMessage("管理我的追蹤條件", card.FlexBubble)}
}

func (h *Handler) detail(ctx context.Context, id string) []messaging_api.MessageInterface {
	cacheKey := "listing:" + id

	l, ok := h.cache.Get(cacheKey)
	if ok {
		if h.metrics != nil {
			h.metrics.RecordCacheHit(store.CollectionListings)
		}
	} else {
		if h.metrics != nil {
			h.metrics.RecordCacheMiss(store.CollectionListings)
		}

		// Collapse concurrent lookups of the same listing into a
		// single store read.
		v, err, _ := h.group.Do(cacheKey, func() (any, error) {
			fetched, err := h.store.GetListing(ctx, id)
			if err != nil {
				return nil, err
			}
			h.cache.Set(cacheKey, *fetched)
			return *fetched, nil
		})
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return []messaging_api.MessageInterface{lineutil.NewTextMessage("❌ 找不到物件資訊")}
		}
		if err != nil {
			h.logger.WithError(err).WithField("listing_id", id).Errorf("load listing detail")
			return []messaging_api.MessageInterface{lineutil.NewTextMessage("❌ 物件詳情載入失敗")}
		}
		l = v.(housing.Listing)
	}

	altText := fmt.Sprintf("物件詳情：%s", orDash(l.Title))
	return []messaging_api.MessageInterface{
		lineutil.NewFlexMessage(altText, DetailCarousel(l, h.cfg.BookingURL())),
	}
}
