package extract

import "regexp"

// RegexRule locates a price fragment with a regular expression over the
// raw content. Useful for sources serving fixed-format or non-HTML pages
// where a CSS selector has nothing to anchor on.
type RegexRule struct {
	locator *regexp.Regexp
}

// NewRegexRule compiles a locator pattern into a rule.
func NewRegexRule(pattern string) (*RegexRule, error) {
	locator, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexRule{locator: locator}, nil
}

// ExtractPrice implements domain.ExtractionRule. The first locator match
// is scanned for a price-shaped number; no match means an absent price.
func (r *RegexRule) ExtractPrice(content []byte) (float64, bool) {
	fragment := r.locator.Find(content)
	if fragment == nil {
		return 0, false
	}

	return parsePrice(string(fragment))
}
