package lineutil

// Brand palette shared by every Flex template. Keeping the hex values
// in one place keeps the cards visually consistent.
const (
	// ColorBrand is the agency orange used for primary CTA buttons.
	ColorBrand = "#EB941E"

	// ColorAccent is the warmer orange used on detail/booking buttons.
	ColorAccent = "#EE9226"

	// ColorPrice highlights the listing price.
	ColorPrice = "#FF5809"

	ColorWhite     = "#FFFFFF"
	ColorText      = "#333333"
	ColorBody      = "#555555"
	ColorMuted     = "#7B7B7B"
	ColorFaint     = "#9D9D9D"
	ColorHighlight = "#FF8000"

	// Tag chips on listing cards.
	ColorTagBg   = "#e7e8e7"
	ColorChipBg  = "#D0D0D0"
	ColorOutline = "#307B91"

	ColorSeparatorDark = "#101010"
)
