package types

import (
	"bytes"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is a rendered document returned by a fetcher.
type Page struct {
	// URL is the requested URL.
	URL string

	// FinalURL is the URL after any redirects.
	FinalURL string

	// HTML is the rendered page source.
	HTML []byte

	// FetchDuration is how long the fetch took, including settle waits.
	FetchDuration time.Duration

	// FetchedAt is when the page was retrieved.
	FetchedAt time.Time

	doc *goquery.Document
}

// NewPage creates a Page from rendered HTML.
func NewPage(url, finalURL string, body []byte, duration time.Duration) *Page {
	return &Page{
		URL:           url,
		FinalURL:      finalURL,
		HTML:          body,
		FetchDuration: duration,
		FetchedAt:     time.Now(),
	}
}

// Document returns the parsed goquery document, lazily initializing it.
func (p *Page) Document() (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.HTML))
	if err != nil {
		return nil, err
	}
	p.doc = doc
	return doc, nil
}

// Root returns the document root node for XPath queries. goquery and
// htmlquery share the same x/net/html node tree, so the document is only
// parsed once.
func (p *Page) Root() (*html.Node, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	if len(doc.Nodes) == 0 {
		return nil, ErrEmptyDocument
	}
	return doc.Nodes[0], nil
}
