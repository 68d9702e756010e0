package extractor

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractDigits keeps only ASCII digits, dropping currency symbols,
// commas, and full-width punctuation. Idempotent: running it on its
// own output changes nothing.
func ExtractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// parsePrice turns a price string like "￥2,990(税込)" into yen.
// Returns nil when no digits survive the cleanup.
func parsePrice(s string) *int {
	digits := ExtractDigits(s)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// trimFullWidthParens removes the full-width parentheses wrapping the
// review count, e.g. "（12）" to "12".
func trimFullWidthParens(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "（")
	s = strings.TrimSuffix(s, "）")
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	return strings.TrimSpace(s)
}

// strippedText returns a selection's own text with nested span
// decorations (discount badges, tax notes) removed.
func strippedText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	clone := sel.Clone()
	clone.Find("span").Remove()
	return strings.TrimSpace(clone.Text())
}
