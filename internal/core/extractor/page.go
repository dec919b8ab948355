package extractor

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTitle is used when the search page has no usable <title>
	DefaultTitle = "media_download"

	// tokenMarker precedes the encrypted payload inside an href
	tokenMarker = "#url="
)

// tokenSelector matches every element whose href carries an encrypted link
var tokenSelector = `[href*="` + tokenMarker + `"]`

// SearchPage is a parsed search result page
type SearchPage struct {
	doc *goquery.Document
}

// ParsePage parses the HTML returned by the search provider
func ParsePage(r io.Reader) (*SearchPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &SearchPage{doc: doc}, nil
}

// ParsePageString is ParsePage for an in-memory document
func ParsePageString(html string) (*SearchPage, error) {
	return ParsePage(strings.NewReader(html))
}

// Title returns the sanitized text of the first <title>, or DefaultTitle
func (p *SearchPage) Title() string {
	title := SanitizeFilename(p.doc.Find("title").First().Text())
	if title == "" {
		return DefaultTitle
	}
	return title
}

// Tokens yields the encrypted links in document order.
// Elements are inspected only as the consumer pulls them.
func (p *SearchPage) Tokens() iter.Seq[RawToken] {
	return func(yield func(RawToken) bool) {
		p.doc.Find(tokenSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, ok := s.Attr("href")
			if !ok {
				return true
			}
			tok, ok := ParseToken(href)
			if !ok {
				return true
			}
			return yield(tok)
		})
	}
}

// ParseToken splits an href into its encrypted payload and descriptor text.
// The payload is everything after the last "#url=" marker.
func ParseToken(href string) (RawToken, bool) {
	idx := strings.LastIndex(href, tokenMarker)
	if idx < 0 {
		return RawToken{}, false
	}
	payload := href[idx+len(tokenMarker):]
	if payload == "" {
		return RawToken{}, false
	}
	return RawToken{
		Encrypted:  payload,
		Descriptor: strings.ToLower(href),
	}, true
}
