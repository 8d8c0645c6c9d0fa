package extract

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// SelectorRule locates a price fragment with a CSS selector and parses the
// first price-shaped number inside the fragment's text.
type SelectorRule struct {
	selector string
}

// NewSelectorRule creates a rule for the given CSS selector.
func NewSelectorRule(selector string) *SelectorRule {
	return &SelectorRule{selector: selector}
}

// Selector returns the rule's CSS selector.
func (r *SelectorRule) Selector() string {
	return r.selector
}

// ExtractPrice implements domain.ExtractionRule. A page that lacks the
// fragment, or whose fragment text carries no price-shaped number, yields
// an absent price rather than an error.
func (r *SelectorRule) ExtractPrice(content []byte) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return 0, false
	}

	fragment := doc.Find(r.selector).First()
	if fragment.Length() == 0 {
		return 0, false
	}

	return parsePrice(fragment.Text())
}
