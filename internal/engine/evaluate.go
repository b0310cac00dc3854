package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/lapidary/internal/model"
)

// Fixed property weights (diagnostic importance, not learned).
// RI carries the most weight in single-reading mode; in dual-reading mode
// the two readings split into riMin/riMax at 15 each.
const (
	weightRI             = 25
	weightRIDual         = 15
	weightSG             = 20
	weightBirefringence  = 15
	weightHardness       = 15
	weightDispersion     = 10
	weightCrystalSystem  = 10
	weightOpticSign      = 5
	weightOpticCharacter = 5
)

// notAvailable marks a reference property the catalog has no usable data
// for. The criterion still contributes its full weight to the total,
// penalizing the candidate rather than skipping it.
const notAvailable = "N/A"

// evaluation accumulates per-property verdicts and weight sums for one
// (criteria, mineral) pair.
type evaluation struct {
	properties    []model.PropertyMatch
	matchedKeys   []string
	matchedWeight int
	totalWeight   int
}

// record appends one property verdict and accumulates its weight.
func (e *evaluation) record(key, measured, expected string, deviation *float64, matched bool, weight int) {
	e.properties = append(e.properties, model.PropertyMatch{
		Property:  key,
		Measured:  measured,
		Expected:  expected,
		Deviation: deviation,
		Matched:   matched,
	})
	e.totalWeight += weight
	if matched {
		e.matchedWeight += weight
		e.matchedKeys = append(e.matchedKeys, key)
	}
}

// Evaluate scores a single mineral against the supplied criteria. Only
// supplied criteria participate; absence means "not evaluated". The
// result is immutable once returned.
func Evaluate(m model.Mineral, c model.Criteria, tol model.Tolerances) model.MatchResult {
	e := &evaluation{}

	// Refractive index: single reading, or two independent readings each
	// scored against the same reference range.
	if c.RI != nil {
		e.evalRange(model.PropRI, *c.RI, m.RIMin, m.RIMax, tol.RI, weightRI)
	} else {
		if c.RIMin != nil {
			e.evalRange(model.PropRIMin, *c.RIMin, m.RIMin, m.RIMax, tol.RI, weightRIDual)
		}
		if c.RIMax != nil {
			e.evalRange(model.PropRIMax, *c.RIMax, m.RIMin, m.RIMax, tol.RI, weightRIDual)
		}
	}

	if c.SG != nil {
		e.evalRange(model.PropSG, *c.SG, m.SGMin, m.SGMax, tol.SG, weightSG)
	}

	if c.Birefringence != nil {
		e.evalScalar(model.PropBirefringence, *c.Birefringence, m.Birefringence, tol.Birefringence, weightBirefringence)
	}

	if c.Dispersion != nil {
		e.evalScalar(model.PropDispersion, *c.Dispersion, m.Dispersion, tol.Dispersion, weightDispersion)
	}

	if c.Hardness != nil {
		e.evalHardness(*c.Hardness, m.Hardness, tol.Hardness)
	}

	if c.CrystalSystem != "" {
		e.evalCrystalSystem(c.CrystalSystem, m.System)
	}

	if c.OpticSign != "" {
		e.evalOpticSign(c.OpticSign, m.OpticalCharacter)
	}

	if c.OpticCharacter != "" {
		e.evalOpticCharacter(c.OpticCharacter, m.System)
	}

	return model.MatchResult{
		Mineral:           m,
		MatchedProperties: e.matchedKeys,
		Confidence:        confidence(e.matchedWeight, e.totalWeight),
		Properties:        e.properties,
		MatchedWeight:     e.matchedWeight,
		TotalWeight:       e.totalWeight,
	}
}

// confidence combines the weight accumulators into a 0-100 score.
// A candidate evaluated against more criteria is not penalized for having
// more opportunities to fail: each criterion contributes its own weight
// share, so partial evidence degrades gracefully.
func confidence(matchedWeight, totalWeight int) int {
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(100 * float64(matchedWeight) / float64(totalWeight)))
}

// evalRange handles continuous ranged properties (RI, SG).
func (e *evaluation) evalRange(key string, measured float64, min, max *float64, tolerance float64, weight int) {
	expected := formatRange(min, max)
	matched := inRange(measured, min, max, tolerance)
	deviation := rangeDeviation(measured, min, max)
	e.record(key, formatValue(measured), expected, deviation, matched, weight)
}

// evalScalar handles continuous scalar properties (birefringence,
// dispersion). A missing reference scalar records an unmatched verdict
// with expected "N/A" and still contributes the full weight.
func (e *evaluation) evalScalar(key string, measured float64, reference *float64, tolerance float64, weight int) {
	if reference == nil {
		e.record(key, formatValue(measured), notAvailable, nil, false, weight)
		return
	}
	diff := math.Abs(measured - *reference)
	matched := diff <= tolerance
	e.record(key, formatValue(measured), formatValue(*reference), &diff, matched, weight)
}

// evalHardness parses the free-text descriptor and applies the
// tolerance-expanded range rule. An unparseable descriptor is treated as
// "no range": unmatched, never an error.
func (e *evaluation) evalHardness(measured float64, descriptor string, tolerance float64) {
	lo, hi, ok := ParseHardness(descriptor)
	if !ok {
		e.record(model.PropHardness, formatValue(measured), notAvailable, nil, false, weightHardness)
		return
	}
	matched := inRange(measured, &lo, &hi, tolerance)
	deviation := rangeDeviation(measured, &lo, &hi)
	e.record(model.PropHardness, formatValue(measured), formatRange(&lo, &hi), deviation, matched, weightHardness)
}

// evalCrystalSystem is a categorical exact match, case-insensitive, no
// tolerance.
func (e *evaluation) evalCrystalSystem(measured, reference string) {
	if strings.TrimSpace(reference) == "" {
		e.record(model.PropCrystalSystem, measured, notAvailable, nil, false, weightCrystalSystem)
		return
	}
	matched := strings.EqualFold(strings.TrimSpace(measured), strings.TrimSpace(reference))
	e.record(model.PropCrystalSystem, measured, reference, nil, matched, weightCrystalSystem)
}

// evalOpticSign derives the sign from the reference's free-text optical
// description and exact-matches it.
func (e *evaluation) evalOpticSign(measured, description string) {
	sign, ok := ParseOpticSign(description)
	if !ok {
		e.record(model.PropOpticSign, measured, notAvailable, nil, false, weightOpticSign)
		return
	}
	e.record(model.PropOpticSign, measured, sign, nil, sign == measured, weightOpticSign)
}

// evalOpticCharacter derives the character from the crystal-system label
// and exact-matches it.
func (e *evaluation) evalOpticCharacter(measured, system string) {
	character, ok := OpticCharacterForSystem(system)
	if !ok {
		e.record(model.PropOpticCharacter, measured, notAvailable, nil, false, weightOpticCharacter)
		return
	}
	matched := strings.EqualFold(character, strings.TrimSpace(measured))
	e.record(model.PropOpticCharacter, measured, character, nil, matched, weightOpticCharacter)
}

// formatValue renders a measurement for display without trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatRange renders a reference range for display. A collapsed range
// renders as a single value; absent data renders as "N/A".
func formatRange(min, max *float64) string {
	if min == nil && max == nil {
		return notAvailable
	}
	lo, hi := rangeBounds(min, max)
	if lo == hi {
		return formatValue(lo)
	}
	return formatValue(lo) + "-" + formatValue(hi)
}
