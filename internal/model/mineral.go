package model

// Mineral is a read-only reference record from the catalog.
// Numeric range fields are optional: a nil pointer means the catalog
// carries no data for that property. The engine never mutates a Mineral.
type Mineral struct {
	Name string `json:"name" yaml:"name"`

	// Refractive index range
	RIMin *float64 `json:"ri_min,omitempty" yaml:"ri_min,omitempty"`
	RIMax *float64 `json:"ri_max,omitempty" yaml:"ri_max,omitempty"`

	// Specific gravity range
	SGMin *float64 `json:"sg_min,omitempty" yaml:"sg_min,omitempty"`
	SGMax *float64 `json:"sg_max,omitempty" yaml:"sg_max,omitempty"`

	// Scalar optical properties
	Birefringence *float64 `json:"birefringence,omitempty" yaml:"birefringence,omitempty"`
	Dispersion    *float64 `json:"dispersion,omitempty" yaml:"dispersion,omitempty"`

	// Hardness is a free-text Mohs descriptor, e.g. "7" or "7-7.5"
	Hardness string `json:"hardness,omitempty" yaml:"hardness,omitempty"`

	// System is the crystal system label, e.g. "cubic", "trigonal"
	System string `json:"system,omitempty" yaml:"system,omitempty"`

	// OpticalCharacter is a free-text optical description,
	// e.g. "uniaxial positive" (optional)
	OpticalCharacter string `json:"optical_character,omitempty" yaml:"optical_character,omitempty"`
}

// CrystalSystem labels recognized by the optic-character lookup.
const (
	SystemCubic        = "cubic"
	SystemIsometric    = "isometric"
	SystemTetragonal   = "tetragonal"
	SystemHexagonal    = "hexagonal"
	SystemTrigonal     = "trigonal"
	SystemOrthorhombic = "orthorhombic"
	SystemMonoclinic   = "monoclinic"
	SystemTriclinic    = "triclinic"
)

// Optic character values.
const (
	OpticIsotropic = "isotropic"
	OpticUniaxial  = "uniaxial"
	OpticBiaxial   = "biaxial"
)

// Optic sign values.
const (
	SignPositive = "+"
	SignNegative = "-"
)
