package model

// Property keys used in PropertyMatch records and matched-property lists.
const (
	PropRI             = "ri"
	PropRIMin          = "riMin"
	PropRIMax          = "riMax"
	PropSG             = "sg"
	PropBirefringence  = "birefringence"
	PropDispersion     = "dispersion"
	PropHardness       = "hardness"
	PropCrystalSystem  = "crystalSystem"
	PropOpticSign      = "opticSign"
	PropOpticCharacter = "opticCharacter"
)

// PropertyMatch is one evaluation outcome for a single criterion against
// a single mineral. Produced fresh per evaluation, never mutated.
type PropertyMatch struct {
	Property string `json:"property"`
	Measured string `json:"measured"`
	// Expected is the formatted reference value, or "N/A" when the
	// catalog carries no usable data for this property.
	Expected string `json:"expected"`
	// Deviation is the absolute distance from the midpoint of the
	// reference range. Diagnostic only, never scored. Nil when either
	// bound is absent.
	Deviation *float64 `json:"deviation,omitempty"`
	Matched   bool     `json:"matched"`
}

// MatchResult is the complete evaluation of one mineral against one set
// of criteria. Constructed once, never mutated after construction.
//
// Invariant: 0 <= MatchedWeight <= TotalWeight, and
// Confidence == round(100 * MatchedWeight / TotalWeight) when
// TotalWeight > 0, else 0.
type MatchResult struct {
	Mineral           Mineral         `json:"mineral"`
	MatchedProperties []string        `json:"matched_properties"`
	Confidence        int             `json:"confidence"`
	Properties        []PropertyMatch `json:"properties"`
	MatchedWeight     int             `json:"matched_weight"`
	TotalWeight       int             `json:"total_weight"`
}
