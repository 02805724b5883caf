package formulation

import "fmt"

// LyeType selects the alkali used to saponify the oils.
type LyeType string

const (
	LyeNaOH  LyeType = "NaOH"
	LyeKOH   LyeType = "KOH"
	LyeKOH90 LyeType = "KOH90"
)

const (
	// kohPerNaOH is the KOH/NaOH molar mass ratio.
	kohPerNaOH = 1.403
	// koh90Purity is the KOH fraction of the commercial 90% grade.
	koh90Purity = 0.9
)

// ParseLyeType accepts NaOH, KOH and KOH90.
func ParseLyeType(raw string) (LyeType, error) {
	switch LyeType(raw) {
	case LyeNaOH, LyeKOH, LyeKOH90:
		return LyeType(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLyeType, raw)
}

// Valid reports whether t is a supported lye type.
func (t LyeType) Valid() bool {
	_, err := ParseLyeType(string(t))
	return err == nil
}

// Label is the display name of the lye type.
func (t LyeType) Label() string {
	if t == LyeKOH90 {
		return "90% KOH"
	}
	return string(t)
}

// AdjustSap converts a NaOH saponification value to the basis of t.
func (t LyeType) AdjustSap(naohSap float64) float64 {
	switch t {
	case LyeKOH:
		return naohSap * kohPerNaOH
	case LyeKOH90:
		return naohSap * kohPerNaOH / koh90Purity
	default:
		return naohSap
	}
}

// sapTerm is one oil's contribution to the lye demand.
type sapTerm struct {
	mass float64
	sap  float64
}

// lyeDemand is the lye needed to saponify every term at 0% superfat.
func lyeDemand(terms []sapTerm) float64 {
	total := 0.0
	for _, t := range terms {
		total += t.mass * t.sap
	}
	return total
}

// applySuperfat discounts raw lye by superfatPercent. Values outside
// 0..100 are applied as given.
func applySuperfat(rawLye, superfatPercent float64) float64 {
	return rawLye * (1.0 - superfatPercent/100.0)
}
