// Package export renders formulations and recipes as printable PDFs and
// spreadsheets.
package export

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/soapworks/internal/formulation"
)

// Report is a computed formulation ready to be exported.
type Report struct {
	ID        string
	Title     string
	CreatedAt time.Time
	Request   formulation.Request
	Result    formulation.Result
	Warnings  []formulation.Warning
}

// NewReport stamps a computed formulation with a fresh id and timestamp.
func NewReport(title string, req formulation.Request, res formulation.Result, warnings []formulation.Warning) Report {
	if title == "" {
		title = "Soap Recipe"
	}
	return Report{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
		Request:   req,
		Result:    res,
		Warnings:  warnings,
	}
}

// ShareCode holds the inputs needed to recompute a formulation. It is what
// the QR code on a printed sheet encodes.
type ShareCode struct {
	ID             string              `json:"id"`
	LyeType        string              `json:"lye"`
	Unit           string              `json:"unit"`
	TotalOilWeight float64             `json:"weight"`
	WaterMethod    string              `json:"waterMethod"`
	WaterValue     float64             `json:"waterValue"`
	Superfat       float64             `json:"superfat"`
	Fragrance      float64             `json:"fragrance"`
	Oils           []formulation.Entry `json:"oils"`
}

// Share builds the share code of a report.
func (r Report) Share() ShareCode {
	req := r.Request
	return ShareCode{
		ID:             r.ID,
		LyeType:        string(req.LyeType),
		Unit:           string(req.Unit),
		TotalOilWeight: req.TotalOilWeight,
		WaterMethod:    string(req.Water.Method),
		WaterValue:     waterValue(req.Water),
		Superfat:       req.SuperfatPercent,
		Fragrance:      req.FragranceRatio,
		Oils:           req.Oils,
	}
}

// ShareJSON is the compact JSON form of Share.
func (r Report) ShareJSON() ([]byte, error) {
	return json.Marshal(r.Share())
}

func waterValue(w formulation.WaterSettings) float64 {
	switch w.Method {
	case formulation.WaterLyeConcentration:
		return w.LyeConcentration
	case formulation.WaterLyeRatio:
		return w.WaterLyeRatio
	default:
		return w.PercentOfOils
	}
}

// WaterLabel describes the active water method and its parameter.
func WaterLabel(w formulation.WaterSettings) string {
	switch w.Method {
	case formulation.WaterLyeConcentration:
		return FormatNumber(w.LyeConcentration, 1) + "% lye concentration"
	case formulation.WaterLyeRatio:
		return FormatNumber(w.WaterLyeRatio, 2) + " : 1 water to lye"
	default:
		return FormatNumber(w.PercentOfOils, 1) + "% of oil weight"
	}
}
