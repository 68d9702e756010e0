package types

import "time"

// Sentinel values used when a listing or detail page omits a field.
// They match the wording shown on the live site for missing data.
const (
	BrandUnknown = "ブランド情報なし"
	NameUnknown  = "商品名なし"
)

// ProductRecord is the unit of crawl output. It is created from a catalog
// page, enriched in place from the product detail page, and appended once to
// the result slice. Pointer fields distinguish "absent" from zero.
type ProductRecord struct {
	// Brand is the shop brand name from the catalog entry.
	Brand string `json:"brand"`

	// ProductURL is the normalized absolute detail-page URL. It is the
	// unique key within a crawl run and is never empty for an accumulated
	// record.
	ProductURL string `json:"product_url"`

	// Name is the product name from the detail page.
	Name string `json:"name,omitempty"`

	// CurrentPrice is the price in JPY, nil when unknown.
	CurrentPrice *int `json:"current_price"`

	// OriginalPrice is the pre-discount price, nil unless the item is
	// marked down.
	OriginalPrice *int `json:"original_price"`

	// Rating is the average review rating, nil when the item has no
	// reviews. nil and 0.0 are distinct states.
	Rating *float64 `json:"rating"`

	// ReviewCount is the number of reviews, 0 when none.
	ReviewCount int `json:"review_count"`

	// ImageURL is the main product photo, empty when not found.
	ImageURL string `json:"image_url,omitempty"`

	// NeedsDetails marks a listing-stage record that still awaits
	// detail-page enrichment.
	NeedsDetails bool `json:"-"`

	// ScrapedAt is when the record was created.
	ScrapedAt time.Time `json:"scraped_at"`
}

// DetailFields holds the fields only available on a product detail page.
type DetailFields struct {
	Name          string
	Rating        *float64
	ReviewCount   int
	ImageURL      string
	CurrentPrice  *int
	OriginalPrice *int
}

// Merge fills the record with detail-page fields and clears the
// needs-details marker. Detail values overwrite listing placeholders.
func (r *ProductRecord) Merge(d *DetailFields) {
	if d == nil {
		return
	}
	r.Name = d.Name
	r.Rating = d.Rating
	r.ReviewCount = d.ReviewCount
	r.ImageURL = d.ImageURL
	r.CurrentPrice = d.CurrentPrice
	r.OriginalPrice = d.OriginalPrice
	r.NeedsDetails = false
}

// Discounted reports whether the record carries a pre-discount price.
func (r *ProductRecord) Discounted() bool {
	return r.OriginalPrice != nil
}
