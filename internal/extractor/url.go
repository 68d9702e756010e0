package extractor

import (
	"fmt"
	"net/url"
	"regexp"
)

var (
	shopPattern = regexp.MustCompile(`/shop/([^/]+)/`)
	gidPattern  = regexp.MustCompile(`gid=(\d+)`)
	didPattern  = regexp.MustCompile(`did=(\d+)`)
)

// CanonicalProductURL rebuilds a catalog href into the stable
// goods-sale URL. Catalog links carry tracking paths that change per
// session; the shop slug plus goods id identify the product, and the
// did parameter pins the color variant. The rebuild needs all three
// identifiers; any href missing one is resolved against the host root
// as-is.
func CanonicalProductURL(host, href string) (string, error) {
	shop := shopPattern.FindStringSubmatch(href)
	gid := gidPattern.FindStringSubmatch(href)
	did := didPattern.FindStringSubmatch(href)

	if shop != nil && gid != nil && did != nil {
		return fmt.Sprintf("https://%s/shop/%s/goods-sale/%s/?did=%s", host, shop[1], gid[1], did[1]), nil
	}

	base, err := url.Parse("https://" + host + "/")
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", host, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
