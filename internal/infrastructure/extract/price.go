// Package extract implements the extraction rules that locate and parse
// prices inside fetched page content. Third-party markup is heterogeneous
// and often malformed; every rule reports an unparseable price as absent
// instead of failing.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// priceAmountPattern matches "digits, decimal separator (comma or period),
// 1-2 fraction digits" — the presented-price shape across the supported
// retailers. Bare integers are not treated as prices.
var priceAmountPattern = regexp.MustCompile(`\d+[.,]\d{1,2}`)

// parsePrice finds the first price-shaped number in text, normalizes the
// decimal separator to a period and parses it. Returns false when the text
// contains no parseable price.
func parsePrice(text string) (float64, bool) {
	match := priceAmountPattern.FindString(text)
	if match == "" {
		return 0, false
	}

	normalized := strings.ReplaceAll(match, ",", ".")
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}

	return price, true
}
