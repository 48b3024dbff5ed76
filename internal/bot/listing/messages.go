package listing

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/chungli-bot/house-linebot-go/internal/housing"
	"github.com/chungli-bot/house-linebot-go/internal/lineutil"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

const (
	placeholderImageURL = "https://picsum.photos/800/520?random=1"
	pinIconURL          = "https://cdn-icons-png.flaticon.com/512/684/684908.png"
	agentPhotoURL       = "https://res.cloudinary.com/daj9nkjd1/image/upload/v1757148957/%E9%A0%AD%E8%B2%BC_a1gz5t.png"
	agentPhoneURI       = "tel:0937339406"

	cardNote = "物件以現場與權狀為主"
)

// Detail-card accent colors, used nowhere else.
const (
	detailLabelColor     = "#8A8F91"
	detailSeparatorColor = "#165161"
)

// SellerText is the canned reply for a sell-side inquiry.
func SellerText() string {
	return "好的，請留下您的姓名及電話\n我將盡速與您聯繫"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatFloat(f *float64, fallback string) string {
	if f == nil {
		return fallback
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func imageOrPlaceholder(url string) string {
	if url == "" {
		return placeholderImageURL
	}
	return url
}

// BuyerCard invites a user without a stored preference to set one up.
func BuyerCard(subscribeURL string) *lineutil.FlexBubble {
	body := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexText("我們會依您「房型×預算×類型」\n在未來有符合您需求的物件時\n第一時間通知您").
			WithSize("sm").WithWrap(true).WithMargin("md").FlexText,
	)
	footer := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexButton(lineutil.NewURIAction("設定追蹤條件", subscribeURL)).
			WithStyle("primary").WithColor(lineutil.ColorBrand).WithHeight("sm").FlexButton,
	)
	return lineutil.NewFlexBubble(nil, nil, body, footer)
}

// ConditionCard shows the stored subscription preference.
func ConditionCard(budget, room, genre, subscribeURL string) *lineutil.FlexBubble {
	body := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexText("當前追蹤條件").
			WithWeight("bold").WithSize("sm").WithColor(lineutil.ColorText).WithMargin("sm").FlexText,
		lineutil.NewFlexSeparator().WithMargin("xs").FlexSeparator,
		lineutil.NewFlexBox("vertical",
			lineutil.NewFlexText("預算："+orDash(budget)).WithSize("sm").WithWrap(true).FlexText,
			lineutil.NewFlexText("格局："+orDash(room)).WithSize("sm").WithWrap(true).FlexText,
			lineutil.NewFlexText("類型："+orDash(genre)).WithSize("sm").WithWrap(true).FlexText,
		).WithMargin("md").WithSpacing("md").FlexBox,
	)
	footer := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexButton(lineutil.NewURIAction("更改追蹤條件", subscribeURL)).
			WithStyle("primary").WithColor(lineutil.ColorBrand).WithHeight("sm").FlexButton,
	)
	return lineutil.NewFlexBubble(nil, nil, body, footer)
}

// SearchCard is the entry card linking to the LIFF search form.
func SearchCard(searchURL string) *lineutil.FlexBubble {
	body := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexBox("vertical",
			lineutil.NewFlexButton(lineutil.NewURIAction("搜尋你的理想好屋", searchURL)).
				WithColor(lineutil.ColorWhite).WithHeight("sm").FlexButton,
		).WithBackgroundColor(lineutil.ColorBrand).WithCornerRadius("5px").WithSpacing("xs").FlexBox,
	).WithSpacing("xs")
	return lineutil.NewFlexBubble(nil, nil, body, nil)
}

// IntroCard is the agent's self-introduction carousel.
func IntroCard() *messaging_api.FlexCarousel {
	tag := func(text string) messaging_api.FlexComponentInterface {
		return lineutil.NewFlexBox("vertical",
			lineutil.NewFlexText(text).WithColor(lineutil.ColorMuted).FlexText,
		).WithBackgroundColor(lineutil.ColorChipBg).WithCornerRadius("5px").
			WithHeight("23px").WithJustifyContent("center").WithAlignItems("center").
			WithMaxWidth("49%").FlexBox
	}

	body := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexText("金牌房仲").WithWeight("bold").WithAlign("center").WithSize("20px").FlexText,
		lineutil.NewFlexBox("horizontal",
			tag("新世代自媒體"),
			tag("優質資深房仲"),
		).WithJustifyContent("space-between").FlexBox,
		lineutil.NewFlexText("桃園市中壢區").
			WithSize("20px").WithWeight("bold").WithColor(lineutil.ColorHighlight).WithMargin("10px").FlexText,
		lineutil.NewFlexText("擁有多年的房地產經驗\n平時也經營 TikTok、YouTube   用影片分析房市趨勢，也分享生活趣事\n\n想買房、換屋，或了解市場，都歡迎與我聊聊！").
			WithSize("15px").WithWrap(true).WithMargin("10px").FlexText,
		lineutil.NewFlexSeparator().WithColor(lineutil.ColorSeparatorDark).WithMargin("15px").FlexSeparator,
		lineutil.NewFlexBox("horizontal",
			lineutil.NewFlexBox("vertical",
				lineutil.NewFlexText("用影片更認識我").WithColor(lineutil.ColorWhite).FlexText,
			).WithHeight("30px").WithMaxWidth("69%").WithBackgroundColor(lineutil.ColorBrand).
				WithCornerRadius("5px").WithJustifyContent("center").WithAlignItems("center").FlexBox,
			lineutil.NewFlexBox("vertical",
				lineutil.NewFlexText("通話").WithColor(lineutil.ColorWhite).FlexText,
			).WithHeight("30px").WithMaxWidth("29%").WithBackgroundColor(lineutil.ColorMuted).
				WithCornerRadius("5px").WithJustifyContent("center").WithAlignItems("center").
				WithAction(lineutil.NewURIAction("action", agentPhoneURI)).FlexBox,
		).WithJustifyContent("space-between").WithMargin("15px").FlexBox,
	)

	hero := lineutil.NewFlexImage(agentPhotoURL).
		WithSize("80%").WithAspectMode("cover").WithAspectRatio("1:1").FlexImage

	bubble := lineutil.NewFlexBubble(nil, hero, body, nil).WithSize("mega")
	return lineutil.NewFlexCarousel([]messaging_api.FlexBubble{*bubble.FlexBubble})
}

func addressRow(address string) messaging_api.FlexComponentInterface {
	return lineutil.NewFlexBox("horizontal",
		lineutil.NewFlexImage(pinIconURL).WithSize("15px").WithFlex(8).WithOffsetTop("3px").FlexImage,
		lineutil.NewFlexText(orDash(address)).WithFlex(90).WithColor(lineutil.ColorMuted).FlexText,
	).WithOffsetEnd("5px").FlexBox
}

func tagChip(text string) messaging_api.FlexComponentInterface {
	return lineutil.NewFlexBox("horizontal",
		lineutil.NewFlexText(orDash(text)).WithAlign("center").WithColor(lineutil.ColorMuted).FlexText,
	).WithCornerRadius("5px").WithBackgroundColor(lineutil.ColorTagBg).
		WithHeight("30px").WithAlignItems("center").FlexBox
}

func priceRow(price *float64) messaging_api.FlexComponentInterface {
	return lineutil.NewFlexBox("horizontal",
		lineutil.NewFlexText("（含車位價格）").
			WithSize("15px").WithWeight("bold").WithColor(lineutil.ColorMuted).
			WithAlign("end").WithGravity("bottom").WithOffsetBottom("5px").FlexText,
		lineutil.NewFlexText(formatFloat(price, "0")+"萬").
			WithSize("30px").WithWeight("bold").WithColor(lineutil.ColorPrice).
			WithMargin("5px").WithAlign("end").WithFlex(0).FlexText,
	).WithMargin("5px").WithOffsetTop("5px").FlexBox
}

// Bubble renders one listing as a carousel card with detail and share
// buttons.
func Bubble(l housing.Listing, shareURL string) messaging_api.FlexBubble {
	hero := lineutil.NewFlexImage(imageOrPlaceholder(l.ImageURL)).
		WithSize("full").WithAspectRatio("20:13").WithAspectMode("cover").FlexImage

	body := lineutil.NewFlexBox("vertical",
		addressRow(l.Address),
		lineutil.NewFlexText(orDash(l.Title)).
			WithWeight("bold").WithSize("25px").WithOffsetBottom("2px").FlexText,
		lineutil.NewFlexText(fmt.Sprintf("%s坪｜%s", formatFloat(l.SquareMeters, "-"), orDash(l.Genre))).
			WithSize("18px").WithColor(lineutil.ColorBody).WithMargin("5px").WithOffsetBottom("2px").FlexText,
		lineutil.NewFlexBox("horizontal",
			tagChip(l.Detail1),
			tagChip(l.Detail2),
		).WithSpacing("md").WithMargin("5px").FlexBox,
		priceRow(l.Price),
		lineutil.NewFlexSeparator().WithMargin("5px").FlexSeparator,
		lineutil.NewFlexBox("horizontal",
			lineutil.NewFlexButton(lineutil.NewPostbackAction("物件詳情", "action=detail&id="+l.ID)).
				WithHeight("sm").WithFlex(50).WithColor(lineutil.ColorAccent).WithStyle("primary").FlexButton,
			lineutil.NewFlexButton(lineutil.NewURIAction("分享", shareURL)).
				WithHeight("sm").WithFlex(25).WithColor(lineutil.ColorFaint).WithStyle("primary").FlexButton,
		).WithSpacing("md").FlexBox,
		lineutil.NewFlexText(cardNote).
			WithAlign("center").WithSize("13px").WithColor(lineutil.ColorMuted).WithOffsetTop("3px").FlexText,
	).WithSpacing("md")

	return *lineutil.NewFlexBubble(nil, hero, body, nil).WithSize("mega").FlexBubble
}

// DetailCarousel renders the full three-card detail view: cover with
// booking CTA, layout facts, and the long-form copy.
func DetailCarousel(l housing.Listing, bookingURL string) *messaging_api.FlexCarousel {
	bookingLink := fmt.Sprintf("%s?id=%s&title=%s", bookingURL, l.ID, url.QueryEscape(l.Title))

	cover := coverBubble(l, bookingLink)
	layout := layoutBubble(l)
	copyText := lineutil.NewFlexBubble(nil, nil,
		lineutil.NewFlexBox("vertical",
			lineutil.NewFlexText(lineutil.NormalizeText(l.Text)).WithWrap(true).FlexText,
		), nil)

	return lineutil.NewFlexCarousel([]messaging_api.FlexBubble{
		*cover.FlexBubble,
		*layout.FlexBubble,
		*copyText.FlexBubble,
	})
}

func coverBubble(l housing.Listing, bookingLink string) *lineutil.FlexBubble {
	hero := lineutil.NewFlexImage(imageOrPlaceholder(l.ImageURL)).
		WithSize("full").WithAspectRatio("20:13").WithAspectMode("cover").FlexImage

	body := lineutil.NewFlexBox("vertical",
		addressRow(l.Address),
		lineutil.NewFlexText(orDash(l.Title)).
			WithWeight("bold").WithSize("25px").WithOffsetBottom("2px").FlexText,
		lineutil.NewFlexText(fmt.Sprintf("%s坪｜%s", formatFloat(l.SquareMeters, "?"), orDash(l.Genre))).
			WithSize("18px").WithMargin("5px").WithOffsetBottom("2px").FlexText,
		lineutil.NewFlexBox("horizontal",
			tagChip(l.Detail1),
			tagChip(l.Detail2),
		).WithSpacing("md").WithMargin("5px").FlexBox,
		priceRow(l.Price),
		lineutil.NewFlexSeparator().WithMargin("5px").FlexSeparator,
	).WithSpacing("md")

	footer := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexButton(lineutil.NewURIAction("預約賞屋", bookingLink)).
			WithColor(lineutil.ColorAccent).WithStyle("primary").WithMargin("md").WithHeight("sm").FlexButton,
		lineutil.NewFlexText(cardNote).
			WithAlign("center").WithSize("13px").WithColor(lineutil.ColorMuted).
			WithMargin("sm").WithOffsetTop("3px").FlexText,
	)

	return lineutil.NewFlexBubble(nil, hero, body, footer).WithSize("mega")
}

func layoutBubble(l housing.Listing) *lineutil.FlexBubble {
	labeled := func(label, value string) messaging_api.FlexComponentInterface {
		return lineutil.NewFlexBox("horizontal",
			lineutil.NewFlexText(label).WithColor(detailLabelColor).WithFlex(0).FlexText,
			lineutil.NewFlexText(value).FlexText,
		).WithMargin("md").WithSpacing("xl").FlexBox
	}

	body := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexBox("horizontal",
			lineutil.NewFlexText(l.ProjectName).WithSize("30px").WithFlex(0).FlexText,
			lineutil.NewFlexBox("vertical",
				lineutil.NewFlexText(l.Exclusive).WithColor(lineutil.ColorOutline).FlexText,
			).WithCornerRadius("5px").WithBorder(lineutil.ColorOutline, "1px").
				WithAlignItems("center").WithFlex(0).FlexBox,
		).WithSpacing("lg").WithAlignItems("center").FlexBox,
		lineutil.NewFlexSeparator().WithColor(detailSeparatorColor).WithMargin("md").FlexSeparator,
		labeled("格局", l.Pattern),
		lineutil.NewFlexBox("horizontal",
			lineutil.NewFlexText("屋齡").WithColor(detailLabelColor).WithFlex(0).FlexText,
			lineutil.NewFlexText(l.Old).WithFlex(0).FlexText,
			lineutil.NewFlexText("樓高").WithColor(detailLabelColor).WithFlex(0).FlexText,
			lineutil.NewFlexText(l.Height).FlexText,
		).WithMargin("md").WithSpacing("xl").FlexBox,
		labeled("權狀坪數", formatFloat(l.SquareMeters2, "")+" (不含車位)"),
		lineutil.NewFlexImage(imageOrPlaceholder(l.PatternURL)).WithSize("full").FlexImage,
		lineutil.NewFlexBox("horizontal",
			lineutil.NewFlexButton(lineutil.NewURIAction("用影片看更多", uriOrDefault(l.VideoURI, "http://linecorp.com/"))).
				WithColor(lineutil.ColorAccent).WithStyle("primary").WithFlex(50).WithHeight("sm").FlexButton,
			lineutil.NewFlexButton(lineutil.NewURIAction("導航", uriOrDefault(l.MapURI, "http://maps.google.com/"))).
				WithColor(lineutil.ColorFaint).WithStyle("primary").WithFlex(25).WithHeight("sm").FlexButton,
		).WithSpacing("md").FlexBox,
	)

	return lineutil.NewFlexBubble(nil, nil, body, nil).WithSize("mega")
}

func uriOrDefault(uri, fallback string) string {
	if uri == "" {
		return fallback
	}
	return uri
}

// NoResultBubble tells the user a search matched nothing.
func NoResultBubble() *lineutil.FlexBubble {
	return lineutil.NewFlexBubble(nil, nil,
		lineutil.NewFlexBox("vertical",
			lineutil.NewFlexText("❌ 沒有符合條件的物件").FlexText,
		), nil)
}

// BookingConfirmCard confirms a viewing appointment to the user.
func BookingConfirmCard(houseTitle, name, phone, timeslotCN string) *lineutil.FlexBubble {
	body := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexText("✅ 預約成功！").
			WithWeight("bold").WithSize("lg").WithColor(lineutil.ColorBrand).FlexText,
		lineutil.NewFlexText("物件："+houseTitle).WithWrap(true).FlexText,
		lineutil.NewFlexText("姓名："+name).WithWrap(true).FlexText,
		lineutil.NewFlexText("電話："+phone).WithWrap(true).FlexText,
		lineutil.NewFlexText("時段："+timeslotCN).WithWrap(true).FlexText,
		lineutil.NewFlexSeparator().WithMargin("md").FlexSeparator,
		lineutil.NewFlexText("我們將盡快與您聯繫 🙏").
			WithAlign("center").WithColor(lineutil.ColorBody).WithSize("sm").FlexText,
	).WithSpacing("md")

	return lineutil.NewFlexBubble(nil, nil, body, nil).WithSize("mega")
}
