package usecase

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/cenoskoczek/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var multiSpacePattern = regexp.MustCompile(`\s+`)

// BuildQuery turns a raw product name into the encoded query string for a
// source. The product name is lower-cased for keyword matching only; the
// source's product mapping is scanned in declaration order and the first
// keyword that is a substring of the name wins. Without a mapping hit the
// name degrades to the generic transform: terms are URL-escaped and joined
// with the source's query separator. Never fails.
func BuildQuery(productName string, source *domain.Source) string {
	lower := strings.ToLower(strings.TrimSpace(productName))

	for _, entry := range source.ProductMapping {
		if entry.Keyword == "" {
			continue
		}
		if strings.Contains(lower, entry.Keyword) {
			return escapeTerms(entry.Query, source.QuerySeparator)
		}
	}

	return escapeTerms(lower, source.QuerySeparator)
}

// escapeTerms URL-escapes each whitespace-separated term and joins them
// with the source's separator (default "+").
func escapeTerms(query, separator string) string {
	if separator == "" {
		separator = "+"
	}

	normalized := multiSpacePattern.ReplaceAllString(strings.TrimSpace(query), " ")
	if normalized == "" {
		return ""
	}

	terms := strings.Split(normalized, " ")
	for i, term := range terms {
		terms[i] = url.QueryEscape(term)
	}
	return strings.Join(terms, separator)
}
