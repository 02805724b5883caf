package formulation

import "fmt"

// Unit is the weight unit a formulation is entered and displayed in.
type Unit string

const (
	UnitPound Unit = "lb"
	UnitOunce Unit = "oz"
	UnitGram  Unit = "g"
)

const (
	ouncesPerPound = 16.0
	gramsPerPound  = 453.592
	gramsPerOunce  = 28.3495
)

// ParseUnit accepts the short unit codes used by the forms and the API.
func ParseUnit(raw string) (Unit, error) {
	switch Unit(raw) {
	case UnitPound, UnitOunce, UnitGram:
		return Unit(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, raw)
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	_, err := ParseUnit(string(u))
	return err == nil
}

// ToPounds converts a weight expressed in u into pounds.
func (u Unit) ToPounds(weight float64) float64 {
	switch u {
	case UnitOunce:
		return weight / ouncesPerPound
	case UnitGram:
		return weight / gramsPerPound
	default:
		return weight
	}
}

// FragranceUnit is the unit fragrance is displayed in. Fragrance is never
// shown in pounds: grams stay grams, everything else is ounces.
func (u Unit) FragranceUnit() Unit {
	if u == UnitGram {
		return UnitGram
	}
	return UnitOunce
}

// fromFragranceUnit converts a fragrance figure (in u.FragranceUnit())
// into u itself so it can be summed with the other batch terms.
func (u Unit) fromFragranceUnit(amount float64) float64 {
	if u == UnitPound {
		return amount / ouncesPerPound
	}
	return amount
}
