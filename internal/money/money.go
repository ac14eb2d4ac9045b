// Package money handles the storefront's free-form currency strings.
// Catalog prices arrive as free text ("1,500 افغانی", "2500", "تماس بگیرید")
// and the lossy parse-to-integer below is the storefront's contract: any
// string that does not contain ASCII digits is worth 0.
package money

import "strconv"

// Currency is the display suffix for all storefront amounts.
const Currency = "افغانی"

// ParsePrice extracts the integer amount from a free-form price string.
// Every rune that is not an ASCII digit or a comma is dropped, then commas
// are dropped, then the rest is parsed. Failure yields 0, never an error.
func ParsePrice(price string) int {
	digits := make([]byte, 0, len(price))
	for _, r := range price {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
		}
	}

	if len(digits) == 0 {
		return 0
	}

	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0
	}

	return n
}

// FormatWithCommas renders n with thousands separators: 1500000 -> "1,500,000".
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatPrice renders an integer amount as a display price.
func FormatPrice(n int) string {
	return FormatWithCommas(n) + " " + Currency
}

// FormatPriceText re-renders a free-form price string as a normalized
// display price, going through the same lossy parse.
func FormatPriceText(price string) string {
	return FormatPrice(ParsePrice(price))
}
