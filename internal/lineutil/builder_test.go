package lineutil

import (
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextMessageTruncatesLongText(t *testing.T) {
	msg := NewTextMessage(strings.Repeat("字", 6000))
	assert.Len(t, []rune(msg.Text), MaxTextMessageLength)
	assert.True(t, strings.HasSuffix(msg.Text, "..."))
}

func TestNewQuickReplyCapsItems(t *testing.T) {
	items := make([]QuickReplyItem, 20)
	for i := range items {
		items[i] = QuickReplyItem{Action: NewMessageAction("標籤", "文字")}
	}
	qr := NewQuickReply(items)
	assert.Len(t, qr.Items, MaxQuickReplyItemCount)
}

func TestNewTextMessageWithQuickReply(t *testing.T) {
	msg := NewTextMessageWithQuickReply("歡迎",
		QuickReplyItem{Action: NewMessageAction("立即找房", "立即找房")},
		QuickReplyItem{Action: NewMessageAction("委託賣房", "委託賣房")},
	)
	require.NotNil(t, msg.QuickReply)
	assert.Len(t, msg.QuickReply.Items, 2)
	assert.Equal(t, "歡迎", msg.Text)
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"escaped newlines", `第一行\n第二行\n\n第三行`, "第一行\n第二行\n\n第三行"},
		{"surrounding whitespace", "  文案  ", "文案"},
		{"plain", "沒有換行", "沒有換行"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "短文字", TruncateRunes("短文字", 10))
	assert.Equal(t, "一二三四五六七...", TruncateRunes("一二三四五六七八九十十一", 10))
	assert.Equal(t, "一二", TruncateRunes("一二三四", 2))
}

func TestBuildCarouselMessagesSplitsAtTen(t *testing.T) {
	bubbles := make([]messaging_api.FlexBubble, 23)
	for i := range bubbles {
		bubbles[i] = *NewFlexBubble(nil, nil, NewFlexBox("vertical", NewFlexText("內容").FlexText), nil).FlexBubble
	}

	messages := BuildCarouselMessages("物件列表", bubbles)
	require.Len(t, messages, 3)

	first, ok := messages[0].(*messaging_api.FlexMessage)
	require.True(t, ok)
	carousel, ok := first.Contents.(*messaging_api.FlexCarousel)
	require.True(t, ok)
	assert.Len(t, carousel.Contents, MaxBubblesPerCarousel)
	assert.Equal(t, "物件列表", first.AltText)

	last, ok := messages[2].(*messaging_api.FlexMessage)
	require.True(t, ok)
	lastCarousel := last.Contents.(*messaging_api.FlexCarousel)
	assert.Len(t, lastCarousel.Contents, 3)
	assert.Equal(t, "物件列表 (21-23)", last.AltText)
}

func TestBuildCarouselMessagesEmpty(t *testing.T) {
	assert.Nil(t, BuildCarouselMessages("空", nil))
}

func TestFlexBubbleComposition(t *testing.T) {
	bubble := NewFlexBubble(
		nil,
		NewFlexImage("https://example.com/hero.jpg").WithSize("full").WithAspectRatio("20:13").WithAspectMode("cover").FlexImage,
		NewFlexBox("vertical",
			NewFlexText("標題").WithWeight("bold").WithSize("25px").FlexText,
			NewFlexSeparator().WithMargin("5px").FlexSeparator,
		).WithSpacing("md"),
		NewFlexBox("vertical",
			NewFlexButton(NewPostbackAction("物件詳情", "action=detail&id=h1")).WithStyle("primary").WithColor(ColorAccent).WithHeight("sm").FlexButton,
		),
	).WithSize("mega")

	assert.Equal(t, messaging_api.FlexBubbleSIZE("mega"), bubble.Size)
	require.NotNil(t, bubble.Hero)
	require.NotNil(t, bubble.Body)
	require.NotNil(t, bubble.Footer)
	assert.Len(t, bubble.Body.Contents, 2)
}
