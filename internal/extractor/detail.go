package extractor

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"

	"github.com/omi5656/scraper-zozo/internal/types"
)

const (
	nameSelector          = ".p-goods-information__heading"
	priceSelector         = ".p-goods-information__price"
	priceDiscountSelector = ".p-goods-information__price--discount"
	discountBadgeSelector = ".p-goods-information-pricedown__rate"
	strikePriceSelector   = ".u-text-style-strike"
	reviewCountSelector   = ".c-rating-total"
	mainImageSelector     = "#photoMain img"

	ratingLabelXPath  = `//*[contains(@aria-label, "平均評価")]`
	ratingLabelMarker = "平均評価"
)

// Detail extracts the enrichment fields from a product detail page.
// Each field is guarded independently: a malformed rating never costs
// the price, and vice versa.
type Detail struct {
	logger *slog.Logger
}

func NewDetail(logger *slog.Logger) *Detail {
	return &Detail{logger: logger.With("component", "extractor", "kind", "detail")}
}

func (d *Detail) Extract(page *types.Page) (*types.DetailFields, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, &types.ParseError{URL: page.URL, Err: err}
	}

	fields := &types.DetailFields{Name: types.NameUnknown}

	if name := strings.TrimSpace(doc.Find(nameSelector).First().Text()); name != "" {
		fields.Name = name
	}

	fields.Rating = d.extractRating(page)
	fields.ReviewCount = extractReviewCount(doc)

	if src, ok := doc.Find(mainImageSelector).First().Attr("src"); ok {
		fields.ImageURL = strings.TrimSpace(src)
	}

	fields.CurrentPrice, fields.OriginalPrice = extractPrices(doc)

	return fields, nil
}

// extractRating scans for the aria-label carrying the average rating,
// e.g. "平均評価 4.4". The trailing token is the numeric value.
// Absent or malformed labels yield nil, never zero.
func (d *Detail) extractRating(page *types.Page) *float64 {
	root, err := page.Root()
	if err != nil {
		return nil
	}

	nodes, err := htmlquery.QueryAll(root, ratingLabelXPath)
	if err != nil || len(nodes) == 0 {
		return nil
	}

	label := htmlquery.SelectAttr(nodes[0], "aria-label")
	idx := strings.LastIndex(label, ratingLabelMarker)
	if idx < 0 {
		return nil
	}

	// The value trails the marker, with or without a space:
	// "平均評価 4.4" and "平均評価4.4" both occur.
	raw := strings.TrimSpace(label[idx+len(ratingLabelMarker):])
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		d.logger.Debug("unparseable rating label", "url", page.URL, "label", label)
		return nil
	}
	return &value
}

// extractReviewCount reads the parenthesized review total next to the
// rating stars. Anything unparseable counts as zero reviews.
func extractReviewCount(doc *goquery.Document) int {
	raw := doc.Find(reviewCountSelector).First().Text()
	n, err := strconv.Atoi(trimFullWidthParens(raw))
	if err != nil {
		return 0
	}
	return n
}

// extractPrices reads the selling price and, for discounted goods, the
// pre-discount price. The discount variant of the price element wins
// when both are present. A discount badge without a readable strike
// price still leaves the original price nil.
func extractPrices(doc *goquery.Document) (current, original *int) {
	priceSel := doc.Find(priceDiscountSelector).First()
	if priceSel.Length() == 0 {
		priceSel = doc.Find(priceSelector).First()
	}
	current = parsePrice(strippedText(priceSel))

	if doc.Find(discountBadgeSelector).Length() > 0 {
		original = parsePrice(strippedText(doc.Find(strikePriceSelector).First()))
		if current == nil {
			current = parsePrice(strippedText(doc.Find(priceSelector).First()))
		}
	}

	return current, original
}
