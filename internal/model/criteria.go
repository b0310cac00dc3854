package model

// Criteria holds the user-measured properties of an unknown stone.
// Every field is optional: a nil pointer or empty string means
// "not evaluated", never "fails". Callers must supply finite numbers;
// behavior on NaN is undefined.
type Criteria struct {
	// RI is a single refractive index reading (isotropic/quick mode).
	// Mutually exclusive with the RIMin/RIMax pair.
	RI *float64 `json:"ri,omitempty" yaml:"ri,omitempty"`

	// RIMin/RIMax are two independent readings from an anisotropic stone.
	// Each is scored as its own weighted criterion against the same
	// reference range.
	RIMin *float64 `json:"riMin,omitempty" yaml:"riMin,omitempty"`
	RIMax *float64 `json:"riMax,omitempty" yaml:"riMax,omitempty"`

	SG            *float64 `json:"sg,omitempty" yaml:"sg,omitempty"`
	Birefringence *float64 `json:"birefringence,omitempty" yaml:"birefringence,omitempty"`
	Dispersion    *float64 `json:"dispersion,omitempty" yaml:"dispersion,omitempty"`
	Hardness      *float64 `json:"hardness,omitempty" yaml:"hardness,omitempty"`

	CrystalSystem string `json:"crystalSystem,omitempty" yaml:"crystalSystem,omitempty"`

	// OpticSign is "+" or "-"; OpticCharacter is isotropic, uniaxial or biaxial.
	OpticSign      string `json:"opticSign,omitempty" yaml:"opticSign,omitempty"`
	OpticCharacter string `json:"opticCharacter,omitempty" yaml:"opticCharacter,omitempty"`
}

// IsEmpty reports whether no criterion is supplied. An empty Criteria
// short-circuits identification to an empty result list.
func (c Criteria) IsEmpty() bool {
	return c.RI == nil &&
		c.RIMin == nil &&
		c.RIMax == nil &&
		c.SG == nil &&
		c.Birefringence == nil &&
		c.Dispersion == nil &&
		c.Hardness == nil &&
		c.CrystalSystem == "" &&
		c.OpticSign == "" &&
		c.OpticCharacter == ""
}

// Tolerances are symmetric additive margins applied to reference ranges,
// one per continuous property. Always additive, never a percentage.
type Tolerances struct {
	RI            float64 `json:"ri" yaml:"ri"`
	SG            float64 `json:"sg" yaml:"sg"`
	Birefringence float64 `json:"birefringence" yaml:"birefringence"`
	Dispersion    float64 `json:"dispersion" yaml:"dispersion"`
	Hardness      float64 `json:"hardness" yaml:"hardness"`
}

// DefaultTolerances returns the standard measurement margins.
func DefaultTolerances() Tolerances {
	return Tolerances{
		RI:            0.01,
		SG:            0.05,
		Birefringence: 0.005,
		Dispersion:    0.003,
		Hardness:      0.5,
	}
}

// ToleranceOverrides is a partial tolerance structure. Nil fields keep
// the base value.
type ToleranceOverrides struct {
	RI            *float64 `json:"ri,omitempty" yaml:"ri,omitempty"`
	SG            *float64 `json:"sg,omitempty" yaml:"sg,omitempty"`
	Birefringence *float64 `json:"birefringence,omitempty" yaml:"birefringence,omitempty"`
	Dispersion    *float64 `json:"dispersion,omitempty" yaml:"dispersion,omitempty"`
	Hardness      *float64 `json:"hardness,omitempty" yaml:"hardness,omitempty"`
}

// Merge applies the overrides onto t and returns the result.
func (t Tolerances) Merge(o ToleranceOverrides) Tolerances {
	if o.RI != nil {
		t.RI = *o.RI
	}
	if o.SG != nil {
		t.SG = *o.SG
	}
	if o.Birefringence != nil {
		t.Birefringence = *o.Birefringence
	}
	if o.Dispersion != nil {
		t.Dispersion = *o.Dispersion
	}
	if o.Hardness != nil {
		t.Hardness = *o.Hardness
	}
	return t
}
