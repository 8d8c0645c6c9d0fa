package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/cenoskoczek/backend/internal/domain"
)

const defaultMaxConcurrency = 8

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	MaxConcurrency int
}

// ComparisonService prices a list of products against every registered
// source and ranks the sources by total cost. Failures are pair-scoped:
// a timed-out fetch or an unparseable page costs that single
// (source, product) pair its price and nothing else.
type ComparisonService struct {
	fetcher        domain.PageFetcher
	sources        []domain.Source
	maxConcurrency int
}

// NewComparisonService creates a comparison service over a fixed source
// registry.
func NewComparisonService(
	fetcher domain.PageFetcher,
	sources []domain.Source,
	config ComparisonServiceConfig,
) *ComparisonService {
	maxConcurrency := config.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}

	return &ComparisonService{
		fetcher:        fetcher,
		sources:        sources,
		maxConcurrency: maxConcurrency,
	}
}

// pair identifies one (source, product) lookup by index. Each pair writes
// only to its own outcome slot, so the fan-out needs no locking.
type pair struct {
	sourceIdx  int
	productIdx int
}

// Compare prices every product against every source and returns the
// per-source totals sorted ascending by cost, ties broken by registry
// declaration order. Sources with zero hits are omitted. Compare never
// fails for a well-formed product list; the degenerate result is an
// empty ranking.
func (s *ComparisonService) Compare(ctx context.Context, products []string) domain.RankedComparison {
	if len(products) == 0 || len(s.sources) == 0 {
		return domain.RankedComparison{}
	}

	outcomes := make([][]domain.Outcome, len(s.sources))
	for i := range outcomes {
		outcomes[i] = make([]domain.Outcome, len(products))
	}

	pairs := make(chan pair)
	var wg sync.WaitGroup

	workers := s.maxConcurrency
	if total := len(s.sources) * len(products); workers > total {
		workers = total
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range pairs {
				outcomes[p.sourceIdx][p.productIdx] = s.lookup(ctx, &s.sources[p.sourceIdx], products[p.productIdx])
			}
		}()
	}

	for si := range s.sources {
		for pi := range products {
			pairs <- pair{sourceIdx: si, productIdx: pi}
		}
	}
	close(pairs)
	wg.Wait()

	return rank(s.sources, products, outcomes)
}

// lookup prices a single (source, product) pair.
func (s *ComparisonService) lookup(ctx context.Context, source *domain.Source, product string) domain.Outcome {
	query := BuildQuery(product, source)
	pageURL := fmt.Sprintf(source.QueryURLTemplate, query)

	content, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		log.Printf("[Comparison] %s: fetch failed for %q: %v", source.Name, product, err)
		return domain.SourceError(err)
	}

	price, ok := source.Rule.ExtractPrice(content)
	if !ok {
		return domain.NotFound()
	}

	return domain.Found(round2(price))
}

// rank merges per-pair outcomes into the deterministic ranked result.
func rank(sources []domain.Source, products []string, outcomes [][]domain.Outcome) domain.RankedComparison {
	result := domain.RankedComparison{}

	for si, source := range sources {
		report := domain.SourceReport{
			Source:         source.Name,
			RequestedCount: len(products),
		}
		for pi := range products {
			outcome := outcomes[si][pi]
			if outcome.Kind == domain.OutcomeFound {
				report.TotalCost += outcome.Price
				report.FoundCount++
			}
		}
		if report.FoundCount == 0 {
			continue
		}
		report.TotalCost = round2(report.TotalCost)
		result = append(result, report)
	}

	// Stable sort keeps registry declaration order for equal totals.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalCost < result[j].TotalCost
	})

	return result
}

// round2 rounds to 2 decimal places of the source's currency unit.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
