package listing

import (
	"context"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chungli-bot/house-linebot-go/internal/config"
	"github.com/chungli-bot/house-linebot-go/internal/ctxutil"
	"github.com/chungli-bot/house-linebot-go/internal/housing"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/metrics"
	"github.com/chungli-bot/house-linebot-go/internal/store"
)

func newTestHandler(s store.Store) *Handler {
	cfg := &config.Config{
		LiffIDSubscribe: "1111-subscribe",
		LiffIDSearch:    "1111-search",
		LiffIDBooking:   "1111-booking",
		LiffIDShare:     "1111-share",
		DetailCacheSize: 16,
		DetailCacheTTL:  time.Minute,
	}
	log := logger.NewWithWriter("debug", io.Discard)
	m := metrics.New(prometheus.NewRegistry())
	return NewHandler(s, cfg, log, m)
}

func sampleListing(id string) housing.Listing {
	price := 1280.0
	room := 3
	sqm := 42.5
	return housing.Listing{
		ID:           id,
		Title:        "中壢夜市旁美寓",
		Genre:        "電梯大樓",
		Address:      "桃園市中壢區中央西路",
		Price:        &price,
		Room:         &room,
		Pattern:      "3房2廳2衛",
		SquareMeters: &sqm,
	}
}

func TestCanHandleCommands(t *testing.T) {
	h := newTestHandler(store.NewMemory())

	for _, cmd := range []string{"中壢夜市生活圈精選", "委託賣房", "立即找房", "你的介紹", "管理我的追蹤條件"} {
		assert.True(t, h.CanHandle(cmd), cmd)
	}
	assert.False(t, h.CanHandle("隨便聊聊"))
	assert.False(t, h.CanHandle(""))
}

func TestTopPicksEmpty(t *testing.T) {
	h := newTestHandler(store.NewMemory())

	msgs := h.HandleMessage(context.Background(), "中壢夜市生活圈精選")
	require.Len(t, msgs, 1)

	text, ok := msgs[0].(*messaging_api.TextMessage)
	require.True(t, ok)
	assert.Equal(t, "目前沒有精選物件 🙏", text.Text)
}

func TestTopPicksCarousel(t *testing.T) {
	mem := store.NewMemory()
	for _, id := range []string{"h1", "h2"} {
		l := sampleListing(id)
		l.Top = true
		mem.PutListing(id, l)
	}
	mem.PutListing("h3", sampleListing("h3")) // not a top pick

	h := newTestHandler(mem)
	msgs := h.HandleMessage(context.Background(), "中壢夜市生活圈精選")
	require.Len(t, msgs, 1)

	flex, ok := msgs[0].(*messaging_api.FlexMessage)
	require.True(t, ok)
	assert.Equal(t, "精選物件", flex.AltText)

	carousel, ok := flex.Contents.(*messaging_api.FlexCarousel)
	require.True(t, ok)
	assert.Len(t, carousel.Contents, 2)
}

func TestSellCommandText(t *testing.T) {
	h := newTestHandler(store.NewMemory())

	msgs := h.HandleMessage(context.Background(), "委託賣房")
	require.Len(t, msgs, 1)

	text, ok := msgs[0].(*messaging_api.TextMessage)
	require.True(t, ok)
	assert.Contains(t, text.Text, "姓名及電話")
}

func TestSearchCommandCard(t *testing.T) {
	h := newTestHandler(store.NewMemory())

	msgs := h.HandleMessage(context.Background(), "立即找房")
	require.Len(t, msgs, 1)

	flex, ok := msgs[0].(*messaging_api.FlexMessage)
	require.True(t, ok)
	assert.Equal(t, "立即找房", flex.AltText)
}

func TestManageConditionWithoutPreference(t *testing.T) {
	h := newTestHandler(store.NewMemory())

	ctx := ctxutil.WithUserID(context.Background(), "U1")
	msgs := h.HandleMessage(ctx, "管理我的追蹤條件")
	require.Len(t, msgs, 1)

	flex, ok := msgs[0].(*messaging_api.FlexMessage)
	require.True(t, ok)
	assert.Equal(t, "需求條件", flex.AltText)
}

func TestManageConditionWithPreference(t *testing.T) {
	mem := store.NewMemory()
	_, err := mem.SetPreference(context.Background(), "U1", &housing.Preference{
		UserID: "U1",
		Budget: "1000-1500",
		Room:   "3",
		Genre:  "電梯大樓",
	})
	require.NoError(t, err)

	h := newTestHandler(mem)
	ctx := ctxutil.WithUserID(context.Background(), "U1")
	msgs := h.HandleMessage(ctx, "管理我的追蹤條件")
	require.Len(t, msgs, 1)

	flex, ok := msgs[0].(*messaging_api.FlexMessage)
	require.True(t, ok)
	assert.Equal(t, "管理我的追蹤條件", flex.AltText)
}

func TestManageConditionWithoutUserID(t *testing.T) {
	h := newTestHandler(store.NewMemory())

	msgs := h.HandleMessage(context.Background(), "管理我的追蹤條件")
	assert.Nil(t, msgs)
}

func TestDetailPostback(t *testing.T) {
	mem := store.NewMemory()
	mem.PutListing("h1", sampleListing("h1"))

	h := newTestHandler(mem)
	params := url.Values{"action": {"detail"}, "id": {"h1"}}

	msgs := h.HandlePostback(context.Background(), "detail", params)
	require.Len(t, msgs, 1)

	flex, ok := msgs[0].(*messaging_api.FlexMessage)
	require.True(t, ok)
	assert.Equal(t, "物件詳情：中壢夜市旁美寓", flex.AltText)
}

func TestDetailPostbackUsesCache(t *testing.T) {
	mem := store.NewMemory()
	mem.PutListing("h1", sampleListing("h1"))

	h := newTestHandler(mem)
	params := url.Values{"action": {"detail"}, "id": {"h1"}}

	h.HandlePostback(context.Background(), "detail", params)
	h.HandlePostback(context.Background(), "detail", params)

	assert.Equal(t, 1, mem.GetListingCalls)
}

func TestDetailPostbackNotFound(t *testing.T) {
	h := newTestHandler(store.NewMemory())
	params := url.Values{"action": {"detail"}, "id": {"missing"}}

	msgs := h.HandlePostback(context.Background(), "detail", params)
	require.Len(t, msgs, 1)

	text, ok := msgs[0].(*messaging_api.TextMessage)
	require.True(t, ok)
	assert.Equal(t, "❌ 找不到物件資訊", text.Text)
}

func TestDetailPostbackMissingID(t *testing.T) {
	mem := store.NewMemory()
	h := newTestHandler(mem)

	msgs := h.HandlePostback(context.Background(), "detail", url.Values{"action": {"detail"}})
	require.Len(t, msgs, 1)

	text, ok := msgs[0].(*messaging_api.TextMessage)
	require.True(t, ok)
	assert.Equal(t, "❌ 找不到物件資訊", text.Text)
	assert.Zero(t, mem.GetListingCalls, "a postback without an id must not hit the store")
}
