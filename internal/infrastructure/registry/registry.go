// Package registry loads the static table of price sources. The registry
// is read once at startup and shared read-only across all comparisons;
// hot reload is deliberately unsupported.
package registry

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/cenoskoczek/backend/internal/domain"
	"github.com/cenoskoczek/backend/internal/infrastructure/extract"
)

// sourceSpec is the on-disk shape of one source entry.
type sourceSpec struct {
	Name           string        `mapstructure:"name"`
	QueryURL       string        `mapstructure:"query_url"`
	QuerySeparator string        `mapstructure:"query_separator"`
	Selector       string        `mapstructure:"selector"`
	Pattern        string        `mapstructure:"pattern"`
	ProductMapping []mappingSpec `mapstructure:"product_mapping"`
}

// mappingSpec keeps keyword remappings as an ordered list; declaration
// order decides which keyword wins a tie.
type mappingSpec struct {
	Keyword string `mapstructure:"keyword"`
	Query   string `mapstructure:"query"`
}

type registryFile struct {
	Sources []sourceSpec `mapstructure:"sources"`
}

// Load reads the source registry from a YAML file. A missing file is not
// an error: the built-in default registry is used instead.
func Load(path string) ([]domain.Source, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			log.Printf("[Registry] %s not found, using built-in sources", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("error reading registry file: %w", err)
	}

	var file registryFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("unable to decode registry: %w", err)
	}

	sources, err := build(file.Sources)
	if err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}

	log.Printf("[Registry] Loaded %d sources from %s", len(sources), path)
	return sources, nil
}

// build validates specs and assembles domain sources, preserving
// declaration order.
func build(specs []sourceSpec) ([]domain.Source, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("registry defines no sources")
	}

	seen := make(map[string]bool, len(specs))
	sources := make([]domain.Source, 0, len(specs))

	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("source with empty name")
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate source name %q", spec.Name)
		}
		seen[spec.Name] = true

		if err := validateTemplate(spec.QueryURL); err != nil {
			return nil, fmt.Errorf("source %q: %w", spec.Name, err)
		}

		rule, err := buildRule(spec)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", spec.Name, err)
		}

		mapping, err := buildMapping(spec.ProductMapping)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", spec.Name, err)
		}

		sources = append(sources, domain.Source{
			Name:             spec.Name,
			QueryURLTemplate: spec.QueryURL,
			QuerySeparator:   spec.QuerySeparator,
			Rule:             rule,
			ProductMapping:   mapping,
		})
	}

	return sources, nil
}

// validateTemplate enforces exactly one %s substitution slot and no other
// formatting verbs.
func validateTemplate(template string) error {
	if template == "" {
		return fmt.Errorf("query_url is required")
	}
	if strings.Count(template, "%s") != 1 {
		return fmt.Errorf("query_url must contain exactly one %%s slot")
	}
	if strings.Contains(strings.ReplaceAll(template, "%s", ""), "%") {
		return fmt.Errorf("query_url must not contain formatting verbs other than %%s")
	}
	return nil
}

func buildRule(spec sourceSpec) (domain.ExtractionRule, error) {
	switch {
	case spec.Selector != "":
		return extract.NewSelectorRule(spec.Selector), nil
	case spec.Pattern != "":
		rule, err := extract.NewRegexRule(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		return rule, nil
	default:
		return nil, fmt.Errorf("either selector or pattern is required")
	}
}

func buildMapping(specs []mappingSpec) ([]domain.MappingEntry, error) {
	seen := make(map[string]bool, len(specs))
	mapping := make([]domain.MappingEntry, 0, len(specs))

	for _, spec := range specs {
		keyword := strings.ToLower(strings.TrimSpace(spec.Keyword))
		if keyword == "" {
			return nil, fmt.Errorf("product_mapping entry with empty keyword")
		}
		if seen[keyword] {
			return nil, fmt.Errorf("duplicate product_mapping keyword %q", keyword)
		}
		seen[keyword] = true

		mapping = append(mapping, domain.MappingEntry{Keyword: keyword, Query: spec.Query})
	}

	return mapping, nil
}

// Default returns the built-in registry covering the three supported
// Polish grocery retailers.
func Default() []domain.Source {
	return []domain.Source{
		{
			Name:             "Biedronka",
			QueryURLTemplate: "https://zakupy.biedronka.pl/szukaj?query=%s",
			Rule:             extract.NewSelectorRule(".product-tile .price"),
			ProductMapping: []domain.MappingEntry{
				{Keyword: "mleko", Query: "mleko swieze 2%"},
				{Keyword: "chleb", Query: "chleb pszenny krojony"},
				{Keyword: "jajka", Query: "jajka z wolnego wybiegu L 10"},
			},
		},
		{
			Name:             "Lidl",
			QueryURLTemplate: "https://www.lidl.pl/q/search?q=%s",
			Rule:             extract.NewSelectorRule(".m-price__price"),
			ProductMapping: []domain.MappingEntry{
				{Keyword: "mleko", Query: "mleko pilos 2%"},
				{Keyword: "chleb", Query: "chleb baltonowski"},
				{Keyword: "jajka", Query: "jajka sciolkowe M 10"},
			},
		},
		{
			Name:             "Auchan",
			QueryURLTemplate: "https://zakupy.auchan.pl/shop/search?text=%s",
			Rule:             extract.NewSelectorRule("[data-testid='product-price']"),
			ProductMapping: []domain.MappingEntry{
				{Keyword: "mleko", Query: "mleko uht 2%"},
				{Keyword: "chleb", Query: "chleb zwykly"},
				{Keyword: "jajka", Query: "jajka swieze 10"},
			},
		},
	}
}
