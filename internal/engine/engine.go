package engine

import (
	"sort"

	"github.com/ppiankov/lapidary/internal/model"
)

// DefaultMinConfidence filters out zero-score candidates.
const DefaultMinConfidence = 1

// Identifier ranks catalog records against measured criteria. It is
// stateless and referentially transparent: every call is independent and
// idempotent, and independent calls are safe to run in parallel.
type Identifier struct {
	minConfidence int
}

// NewIdentifier creates an identifier. A non-positive minConfidence falls
// back to DefaultMinConfidence.
func NewIdentifier(minConfidence int) *Identifier {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Identifier{minConfidence: minConfidence}
}

// FindMatches evaluates every catalog record independently against the
// criteria, filters results below the minimum confidence, and sorts
// descending by confidence. The sort is stable: records with equal scores
// retain their relative catalog order.
//
// Empty criteria short-circuit to an empty list, guarding against scoring
// an unconstrained query against every reference record.
func (id *Identifier) FindMatches(catalog []model.Mineral, c model.Criteria, tol model.Tolerances) []model.MatchResult {
	results := []model.MatchResult{}
	if c.IsEmpty() {
		return results
	}

	for _, mineral := range catalog {
		result := Evaluate(mineral, c, tol)
		if result.Confidence < id.minConfidence {
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return results
}
