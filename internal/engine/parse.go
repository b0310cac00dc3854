package engine

import (
	"strconv"
	"strings"

	"github.com/ppiankov/lapidary/internal/model"
)

// ParseHardness converts a catalog hardness descriptor such as "7" or
// "7-7.5" (hyphen or en-dash separator, optional whitespace) into a
// [min, max] pair. A single number yields equal bounds. Returns ok=false
// when no numeric pattern is found; the caller records the property as
// unmatched rather than failing.
func ParseHardness(descriptor string) (lo, hi float64, ok bool) {
	s := strings.ReplaceAll(descriptor, "–", "-") // en-dash
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}

	var vals []float64
	for _, part := range strings.Split(s, "-") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}

	switch len(vals) {
	case 0:
		return 0, 0, false
	case 1:
		return vals[0], vals[0], true
	default:
		return vals[0], vals[1], true
	}
}

// ParseOpticSign inspects a free-text optical-character description for
// an optic sign. The scan is case-insensitive: "positive" or "+" yields
// "+", "negative" or "-" yields "-". Returns ok=false when no sign is
// detected.
func ParseOpticSign(description string) (sign string, ok bool) {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "positive") || strings.Contains(lower, "+"):
		return model.SignPositive, true
	case strings.Contains(lower, "negative") || strings.Contains(lower, "-"):
		return model.SignNegative, true
	default:
		return "", false
	}
}

// OpticCharacterForSystem infers optic character from the crystal-system
// label alone. The mapping is a fixed lookup table:
//
//	cubic, isometric                  -> isotropic
//	tetragonal, hexagonal, trigonal   -> uniaxial
//	orthorhombic, monoclinic, triclinic -> biaxial
//
// Returns ok=false for unrecognized labels.
func OpticCharacterForSystem(system string) (character string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(system)) {
	case model.SystemCubic, model.SystemIsometric:
		return model.OpticIsotropic, true
	case model.SystemTetragonal, model.SystemHexagonal, model.SystemTrigonal:
		return model.OpticUniaxial, true
	case model.SystemOrthorhombic, model.SystemMonoclinic, model.SystemTriclinic:
		return model.OpticBiaxial, true
	default:
		return "", false
	}
}
