package lineutil

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// FlexBubble wrapper
type FlexBubble struct {
	*messaging_api.FlexBubble
}

// NewFlexBubble creates a new Flex Bubble container.
// Note: header, body, footer must be FlexBox or nil
func NewFlexBubble(header *FlexBox, hero messaging_api.FlexComponentInterface, body *FlexBox, footer *FlexBox) *FlexBubble {
	bubble := &messaging_api.FlexBubble{}
	if header != nil {
		bubble.Header = header.FlexBox
	}
	if hero != nil {
		bubble.Hero = hero
	}
	if body != nil {
		bubble.Body = body.FlexBox
	}
	if footer != nil {
		bubble.Footer = footer.FlexBox
	}
	return &FlexBubble{bubble}
}

// WithSize sets the bubble size (nano/micro/kilo/mega/giga).
func (b *FlexBubble) WithSize(size string) *FlexBubble {
	b.Size = messaging_api.FlexBubbleSIZE(size)
	return b
}

// NewFlexCarousel creates a Flex Carousel from a slice of bubbles.
// LINE API limits carousels to 10 bubbles maximum; for larger sets use
// BuildCarouselMessages which splits into multiple messages.
func NewFlexCarousel(bubbles []messaging_api.FlexBubble) *messaging_api.FlexCarousel {
	return &messaging_api.FlexCarousel{
		Contents: bubbles,
	}
}

// BuildCarouselMessages creates Flex Messages from bubbles, splitting
// into multiple carousels of at most 10 bubbles each. Multi-page
// results get a page range appended to the alt text.
func BuildCarouselMessages(altText string, bubbles []messaging_api.FlexBubble) []messaging_api.MessageInterface {
	if len(bubbles) == 0 {
		return nil
	}

	var messages []messaging_api.MessageInterface
	for i := 0; i < len(bubbles); i += MaxBubblesPerCarousel {
		end := i + MaxBubblesPerCarousel
		if end > len(bubbles) {
			end = len(bubbles)
		}

		msgAltText := altText
		if len(bubbles) > MaxBubblesPerCarousel && i > 0 {
			msgAltText = fmt.Sprintf("%s (%d-%d)", altText, i+1, end)
		}

		messages = append(messages, NewFlexMessage(msgAltText, NewFlexCarousel(bubbles[i:end])))
	}
	return messages
}

// FlexBox wrapper for messaging_api.FlexBox with fluent API.
type FlexBox struct {
	*messaging_api.FlexBox
}

// NewFlexBox creates a new FlexBox with the specified layout and contents.
func NewFlexBox(layout string, contents ...messaging_api.FlexComponentInterface) *FlexBox {
	return &FlexBox{&messaging_api.FlexBox{
		Layout:   messaging_api.FlexBoxLAYOUT(layout),
		Contents: contents,
	}}
}

// WithSpacing sets the spacing between components.
func (b *FlexBox) WithSpacing(spacing string) *FlexBox {
	b.Spacing = spacing
	return b
}

// WithMargin sets the margin of the box.
func (b *FlexBox) WithMargin(margin string) *FlexBox {
	b.Margin = margin
	return b
}

// WithFlex sets the flex factor of the box.
func (b *FlexBox) WithFlex(flex int32) *FlexBox {
	b.Flex = flex
	return b
}

// WithBackgroundColor sets the background color of the box.
func (b *FlexBox) WithBackgroundColor(color string) *FlexBox {
	b.BackgroundColor = color
	return b
}

// WithCornerRadius sets the corner radius of the box.
func (b *FlexBox) WithCornerRadius(radius string) *FlexBox {
	b.CornerRadius = radius
	return b
}

// WithBorder sets the border color and width of the box.
func (b *FlexBox) WithBorder(color, width string) *FlexBox {
	b.BorderColor = color
	b.BorderWidth = width
	return b
}

// WithHeight sets a fixed height for the box.
func (b *FlexBox) WithHeight(height string) *FlexBox {
	b.Height = height
	return b
}

// WithMaxWidth sets the maximum width of the box.
func (b *FlexBox) WithMaxWidth(width string) *FlexBox {
	b.MaxWidth = width
	return b
}

// WithAlignItems sets the cross-axis alignment of child components.
func (b *FlexBox) WithAlignItems(align string) *FlexBox {
	b.AlignItems = messaging_api.FlexBoxALIGN_ITEMS(align)
	return b
}

// WithJustifyContent sets the main-axis distribution of child components.
func (b *FlexBox) WithJustifyContent(justify string) *FlexBox {
	b.JustifyContent = messaging_api.FlexBoxJUSTIFY_CONTENT(justify)
	return b
}

// WithOffsetTop shifts the box down from its default position.
func (b *FlexBox) WithOffsetTop(offset string) *FlexBox {
	b.OffsetTop = offset
	return b
}

// WithOffsetEnd shifts the box away from the trailing edge.
func (b *FlexBox) WithOffsetEnd(offset string) *FlexBox {
	b.OffsetEnd = offset
	return b
}

// WithAction attaches a tap action to the whole box.
func (b *FlexBox) WithAction(action Action) *FlexBox {
	b.Action = action
	return b
}

// FlexText wrapper for messaging_api.FlexText with fluent API.
type FlexText struct {
	*messaging_api.FlexText
}

// NewFlexText creates a new FlexText with the specified text.
func NewFlexText(text string) *FlexText {
	return &FlexText{&messaging_api.FlexText{
		Text: text,
	}}
}

// WithWeight sets the font weight (regular/bold).
func (t *FlexText) WithWeight(weight string) *FlexText {
	t.Weight = messaging_api.FlexTextWEIGHT(weight)
	return t
}

// WithSize sets the font size.
func (t *FlexText) WithSize(size string) *FlexText {
	t.Size = size
	return t
}

// WithColor sets the text color.
func (t *FlexText) WithColor(color string) *FlexText {
	t.Color = color
	return t
}

// WithWrap enables or disables text wrapping.
func (t *FlexText) WithWrap(wrap bool) *FlexText {
	t.Wrap = wrap
	return t
}

// WithFlex sets the flex factor for the text component.
func (t *FlexText) WithFlex(flex int32) *FlexText {
	t.Flex = flex
	return t
}

// WithAlign sets the text alignment (start/end/center).
func (t *FlexText) WithAlign(align string) *FlexText {
	t.Align = messaging_api.FlexTextALIGN(align)
	return t
}

// WithGravity sets the vertical alignment within the parent box.
func (t *FlexText) WithGravity(gravity string) *FlexText {
	t.Gravity = messaging_api.FlexTextGRAVITY(gravity)
	return t
}

// WithMargin sets the margin of the text component.
func (t *FlexText) WithMargin(margin string) *FlexText {
	t.Margin = margin
	return t
}

// WithOffsetTop shifts the text down from its default position.
func (t *FlexText) WithOffsetTop(offset string) *FlexText {
	t.OffsetTop = offset
	return t
}

// WithOffsetBottom shifts the text up from its default position.
func (t *FlexText) WithOffsetBottom(offset string) *FlexText {
	t.OffsetBottom = offset
	return t
}

// FlexButton wrapper for messaging_api.FlexButton with fluent API.
type FlexButton struct {
	*messaging_api.FlexButton
}

// NewFlexButton creates a new FlexButton with the specified action.
func NewFlexButton(action Action) *FlexButton {
	return &FlexButton{&messaging_api.FlexButton{
		Action: action,
	}}
}

// WithStyle sets the button style (link/primary/secondary).
func (b *FlexButton) WithStyle(style string) *FlexButton {
	b.Style = messaging_api.FlexButtonSTYLE(style)
	return b
}

// WithColor sets the button color.
func (b *FlexButton) WithColor(color string) *FlexButton {
	b.Color = color
	return b
}

// WithHeight sets the button height (sm/md).
func (b *FlexButton) WithHeight(height string) *FlexButton {
	b.Height = messaging_api.FlexButtonHEIGHT(height)
	return b
}

// WithMargin sets the margin of the button.
func (b *FlexButton) WithMargin(margin string) *FlexButton {
	b.Margin = margin
	return b
}

// WithFlex sets the flex factor of the button.
func (b *FlexButton) WithFlex(flex int32) *FlexButton {
	b.Flex = flex
	return b
}

// FlexImage wrapper for messaging_api.FlexImage with fluent API.
type FlexImage struct {
	*messaging_api.FlexImage
}

// NewFlexImage creates a new FlexImage for the given URL.
func NewFlexImage(url string) *FlexImage {
	return &FlexImage{&messaging_api.FlexImage{
		Url: url,
	}}
}

// WithSize sets the image size (e.g. "full", "80%", "15px").
func (i *FlexImage) WithSize(size string) *FlexImage {
	i.Size = size
	return i
}

// WithAspectRatio sets the image aspect ratio (e.g. "20:13").
func (i *FlexImage) WithAspectRatio(ratio string) *FlexImage {
	i.AspectRatio = ratio
	return i
}

// WithAspectMode sets how the image fills its area (cover/fit).
func (i *FlexImage) WithAspectMode(mode string) *FlexImage {
	i.AspectMode = messaging_api.FlexImageASPECT_MODE(mode)
	return i
}

// WithFlex sets the flex factor of the image.
func (i *FlexImage) WithFlex(flex int32) *FlexImage {
	i.Flex = flex
	return i
}

// WithOffsetTop shifts the image down from its default position.
func (i *FlexImage) WithOffsetTop(offset string) *FlexImage {
	i.OffsetTop = offset
	return i
}

// FlexSeparator wrapper for messaging_api.FlexSeparator with fluent API.
type FlexSeparator struct {
	*messaging_api.FlexSeparator
}

// NewFlexSeparator creates a new FlexSeparator.
func NewFlexSeparator() *FlexSeparator {
	return &FlexSeparator{&messaging_api.FlexSeparator{}}
}

// WithMargin sets the margin of the separator.
func (s *FlexSeparator) WithMargin(margin string) *FlexSeparator {
	s.Margin = margin
	return s
}

// WithColor sets the color of the separator.
func (s *FlexSeparator) WithColor(color string) *FlexSeparator {
	s.Color = color
	return s
}
