package catalog

import "net/url"

// categoryEmojis maps a catalog category to the glyph used in synthesized
// placeholder imagery and image-less UI fallbacks.
var categoryEmojis = map[string]string{
	"آرایشی و بهداشتی":  "💄",
	"مراقبت مو":         "🧴",
	"مراقبت پوست":       "🧴",
	"بهداشتی":           "🧼",
	"لوازم آرایشی":      "💅",
	"عطر":               "🌸",
	"کرم":               "🧴",
	"شامپو":             "🧴",
	"صابون":             "🧼",
	"لوازم خانگی":       "🏠",
	"لباس":              "👕",
	"کفش":               "👟",
	"اکسسوری":           "👜",
	"لوازم الکترونیکی":  "📱",
	"کتاب":              "📚",
	"اسباب بازی":        "🧸",
	"خوراکی":            "🍎",
	"عمومی":             "📦",
}

// CategoryPlaceholder returns the glyph for a category, defaulting to the
// generic package glyph.
func CategoryPlaceholder(category string) string {
	if emoji, ok := categoryEmojis[category]; ok {
		return emoji
	}

	return "📦"
}

// placeholderImageURL synthesizes the image used when a product record
// carries no attachments: the category glyph plus the first 15 runes of the
// product name, url-escaped into a placeholder service link.
func placeholderImageURL(category, name string) string {
	runes := []rune(name)
	if len(runes) > 15 {
		runes = runes[:15]
	}

	text := CategoryPlaceholder(category) + " " + string(runes)

	return "https://via.placeholder.com/400x300/3949ab/FFFFFF?text=" + url.QueryEscape(text)
}
