package lineutil

// LINE API character and component limits (rune count).
// Reference: https://developers.line.biz/en/reference/messaging-api/
const (
	MaxTextMessageLength = 5000 // Text message max content length
	MaxAltTextLength     = 400  // Flex message alt text length
	MaxPostbackData      = 300  // Postback action data length

	// MaxBubblesPerCarousel is the LINE API limit for Flex carousels.
	MaxBubblesPerCarousel = 10

	// MaxQuickReplyItemCount is the max items in a quick reply.
	MaxQuickReplyItemCount = 13
)
