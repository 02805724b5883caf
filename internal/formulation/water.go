package formulation

import "fmt"

// WaterMethod selects how the water amount is derived.
type WaterMethod string

const (
	WaterPercentOfOils    WaterMethod = "percentOfOils"
	WaterLyeConcentration WaterMethod = "lyeConcentration"
	WaterLyeRatio         WaterMethod = "waterLyeRatio"
)

// ParseWaterMethod accepts percentOfOils, lyeConcentration and waterLyeRatio.
func ParseWaterMethod(raw string) (WaterMethod, error) {
	switch WaterMethod(raw) {
	case WaterPercentOfOils, WaterLyeConcentration, WaterLyeRatio:
		return WaterMethod(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWaterMethod, raw)
}

// WaterSettings carries the parameters of all three methods. Only the one
// matching Method is read.
type WaterSettings struct {
	Method           WaterMethod
	PercentOfOils    float64
	LyeConcentration float64
	WaterLyeRatio    float64
}

// DefaultWaterSettings mirrors the calculator's initial form values.
func DefaultWaterSettings() WaterSettings {
	return WaterSettings{
		Method:           WaterPercentOfOils,
		PercentOfOils:    38,
		LyeConcentration: 33,
		WaterLyeRatio:    2,
	}
}

// Water returns the water amount for the given oil weight and final lye.
// An unknown method yields zero water.
func (w WaterSettings) Water(totalOilWeight, lye float64) float64 {
	switch w.Method {
	case WaterPercentOfOils:
		return percentOfOils(totalOilWeight, w.PercentOfOils)
	case WaterLyeRatio:
		return lye * w.WaterLyeRatio
	case WaterLyeConcentration:
		// concentration = lye / (lye + water)
		return lye/(w.LyeConcentration/100.0) - lye
	default:
		return 0
	}
}

func percentOfOils(totalOilWeight, percent float64) float64 {
	return totalOilWeight * (percent / 100.0)
}
