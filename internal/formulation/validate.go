package formulation

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidWeight        = errors.New("total oil weight must be greater than 0")
	ErrNegativeWeight       = errors.New("oil weight must not be negative")
	ErrInvalidConcentration = errors.New("lye concentration must be greater than 0")
	ErrNonFinite            = errors.New("value must be a finite number")
	ErrUnknownLyeType       = errors.New("unknown lye type")
	ErrUnknownUnit          = errors.New("unknown weight unit")
	ErrUnknownWaterMethod   = errors.New("unknown water method")
)

// PercentTolerance is how far the oil percentages may drift from 100
// before a warning is raised.
const PercentTolerance = 0.1

// Validate checks the request before it is handed to Compute. All problems
// are reported together.
func Validate(req Request) error {
	var errs []error

	if !req.LyeType.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownLyeType, req.LyeType))
	}
	if !req.Unit.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownUnit, req.Unit))
	}

	if !finite(req.TotalOilWeight) {
		errs = append(errs, fmt.Errorf("total oil weight: %w", ErrNonFinite))
	} else if req.TotalOilWeight <= 0 {
		errs = append(errs, ErrInvalidWeight)
	}

	switch req.Water.Method {
	case WaterPercentOfOils:
		errs = appendNonFinite(errs, "water percent", req.Water.PercentOfOils)
	case WaterLyeRatio:
		errs = appendNonFinite(errs, "water:lye ratio", req.Water.WaterLyeRatio)
	case WaterLyeConcentration:
		c := req.Water.LyeConcentration
		if !finite(c) {
			errs = append(errs, fmt.Errorf("lye concentration: %w", ErrNonFinite))
		} else if c <= 0 {
			errs = append(errs, ErrInvalidConcentration)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownWaterMethod, req.Water.Method))
	}

	errs = appendNonFinite(errs, "superfat", req.SuperfatPercent)
	errs = appendNonFinite(errs, "fragrance ratio", req.FragranceRatio)
	for _, e := range req.Oils {
		errs = appendNonFinite(errs, fmt.Sprintf("oil %d percentage", e.OilID), e.Percentage)
	}

	return errors.Join(errs...)
}

// ValidateQuick checks a quick calculator request.
func ValidateQuick(req QuickRequest) error {
	var errs []error
	if !req.Unit.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownUnit, req.Unit))
	}
	errs = appendNonFinite(errs, "superfat", req.SuperfatPercent)
	errs = appendNonFinite(errs, "water percent", req.WaterPercent)
	for _, o := range req.Oils {
		errs = appendNonFinite(errs, o.Name+" weight", o.Weight)
		if o.Weight < 0 {
			errs = append(errs, fmt.Errorf("%s: %w", o.Name, ErrNegativeWeight))
		}
		errs = appendNonFinite(errs, o.Name+" sap", o.Sap)
	}
	return errors.Join(errs...)
}

func appendNonFinite(errs []error, field string, v float64) []error {
	if finite(v) {
		return errs
	}
	return append(errs, fmt.Errorf("%s: %w", field, ErrNonFinite))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WarningKind classifies advisory warnings.
type WarningKind string

const (
	WarnPercentageDrift WarningKind = "percentage-drift"
	WarnUnknownOil      WarningKind = "unknown-oil"
)

// Warning is a data-quality note shown next to a result. Warnings never
// stop a computation.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// Warnings lists the advisory problems of a computed request.
func Warnings(req Request, res Result) []Warning {
	var out []Warning
	if len(req.Oils) > 0 {
		total := req.Oils.PercentTotal()
		if math.Abs(total-100) > PercentTolerance {
			out = append(out, Warning{
				Kind:    WarnPercentageDrift,
				Message: fmt.Sprintf("oil percentages add up to %.1f%%, not 100%%", total),
			})
		}
	}
	for _, id := range res.MissingOils {
		out = append(out, Warning{
			Kind:    WarnUnknownOil,
			Message: fmt.Sprintf("oil %d is not in the catalog; its properties were counted as zero", id),
		})
	}
	return out
}
