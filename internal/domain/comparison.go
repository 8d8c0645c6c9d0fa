package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OutcomeKind is the three-state result of a single (source, product) lookup.
type OutcomeKind int

const (
	OutcomeFound OutcomeKind = iota
	OutcomeNotFound
	OutcomeSourceError
)

// Outcome is the result of pricing one product against one source.
// A successfully parsed non-negative price, including 0, counts as found.
type Outcome struct {
	Kind  OutcomeKind
	Price float64
	Err   error
}

// Found builds a found outcome with the given price.
func Found(price float64) Outcome {
	return Outcome{Kind: OutcomeFound, Price: price}
}

// NotFound builds an outcome for a page that lacks the product.
func NotFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

// SourceError builds an outcome for a failed fetch.
func SourceError(err error) Outcome {
	return Outcome{Kind: OutcomeSourceError, Err: err}
}

// SourceReport summarizes one source's totals for a comparison request.
type SourceReport struct {
	Source         string
	TotalCost      float64
	FoundCount     int
	RequestedCount int
}

// FoundProducts renders the "<found>/<requested>" hit summary.
func (r SourceReport) FoundProducts() string {
	return fmt.Sprintf("%d/%d", r.FoundCount, r.RequestedCount)
}

// RankedComparison is the final comparison result: source reports sorted
// ascending by total cost, ties broken by registry declaration order.
type RankedComparison []SourceReport

// MarshalJSON renders the ranked result as a JSON object whose key order
// is the ranked order, matching the ordered-mapping output contract.
func (rc RankedComparison) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, report := range rc {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(report.Source)
		if err != nil {
			return nil, err
		}
		entry, err := json.Marshal(struct {
			TotalCost     float64 `json:"total_cost"`
			FoundProducts string  `json:"found_products"`
		}{
			TotalCost:     report.TotalCost,
			FoundProducts: report.FoundProducts(),
		})
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(entry)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
