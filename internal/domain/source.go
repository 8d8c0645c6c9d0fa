package domain

// ExtractionRule locates a price-bearing fragment in fetched page content
// and parses a numeric value from it. Implementations must never panic on
// malformed markup; a price that cannot be located or parsed is reported
// as absent via the second return value.
type ExtractionRule interface {
	ExtractPrice(content []byte) (float64, bool)
}

// MappingEntry maps a lowercase keyword to the canonical query string used
// for that keyword on a particular source.
type MappingEntry struct {
	Keyword string
	Query   string
}

// Source describes a single external price source. Sources are loaded once
// at startup and are read-only afterwards, so they are safe to share across
// concurrent comparisons.
type Source struct {
	// Name is the unique display name of the source.
	Name string

	// QueryURLTemplate contains exactly one %s slot for the encoded query.
	QueryURLTemplate string

	// QuerySeparator joins query terms in the generic transform.
	// Empty means "+".
	QuerySeparator string

	// Rule extracts a price from this source's page content.
	Rule ExtractionRule

	// ProductMapping remaps product-name keywords to canonical queries.
	// Scanned in declaration order; the first matching keyword wins.
	ProductMapping []MappingEntry
}
