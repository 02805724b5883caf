package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/export"
	"github.com/Simplici0/soapworks/internal/formulation"
)

const maxAPIBody = 1 << 20

type apiWater struct {
	Method           string   `json:"method"`
	PercentOfOils    *float64 `json:"percentOfOils"`
	LyeConcentration *float64 `json:"lyeConcentration"`
	WaterLyeRatio    *float64 `json:"waterLyeRatio"`
}

type apiOil struct {
	OilID      int      `json:"oilId"`
	Percentage *float64 `json:"percentage"`
	Amount     *float64 `json:"amount"`
}

type apiFormulationRequest struct {
	Title          string   `json:"title"`
	LyeType        string   `json:"lyeType"`
	Unit           string   `json:"unit"`
	TotalOilWeight float64  `json:"totalOilWeight"`
	Water          apiWater `json:"water"`
	Superfat       *float64 `json:"superfat"`
	FragranceRatio *float64 `json:"fragranceRatio"`
	Oils           []apiOil `json:"oils"`
}

type apiFormulationResponse struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	CreatedAt time.Time             `json:"createdAt"`
	Result    formulation.Result    `json:"result"`
	Warnings  []formulation.Warning `json:"warnings"`
	Share     export.ShareCode      `json:"share"`
}

type apiQuickRequest struct {
	Unit         string   `json:"unit"`
	Superfat     *float64 `json:"superfat"`
	WaterPercent *float64 `json:"waterPercent"`
	Oils         []struct {
		Name   string  `json:"name"`
		Sap    float64 `json:"sap"`
		Weight float64 `json:"weight"`
	} `json:"oils"`
}

// toRequest fills a formulation request, keeping the calculator defaults
// for omitted fields. Oils may be given by percentage or by amount.
func (in apiFormulationRequest) toRequest(defaultUnit formulation.Unit) (formulation.Request, error) {
	req := formulation.DefaultRequest()
	req.Unit = defaultUnit
	req.TotalOilWeight = in.TotalOilWeight

	var err error
	if in.LyeType != "" {
		if req.LyeType, err = formulation.ParseLyeType(in.LyeType); err != nil {
			return req, err
		}
	}
	if in.Unit != "" {
		if req.Unit, err = formulation.ParseUnit(in.Unit); err != nil {
			return req, err
		}
	}
	if in.Water.Method != "" {
		if req.Water.Method, err = formulation.ParseWaterMethod(in.Water.Method); err != nil {
			return req, err
		}
	}
	setIfPresent(&req.Water.PercentOfOils, in.Water.PercentOfOils)
	setIfPresent(&req.Water.LyeConcentration, in.Water.LyeConcentration)
	setIfPresent(&req.Water.WaterLyeRatio, in.Water.WaterLyeRatio)
	setIfPresent(&req.SuperfatPercent, in.Superfat)
	setIfPresent(&req.FragranceRatio, in.FragranceRatio)

	req.Oils = make(formulation.Entries, 0, len(in.Oils))
	for i, o := range in.Oils {
		switch {
		case o.Percentage != nil:
			req.Oils = append(req.Oils, formulation.Entry{OilID: o.OilID, Percentage: *o.Percentage})
		case o.Amount != nil:
			req.Oils = append(req.Oils, formulation.EntryFromAmount(o.OilID, *o.Amount, req.TotalOilWeight))
		default:
			return req, fmt.Errorf("oil %d needs a percentage or an amount", i+1)
		}
	}
	return req, nil
}

func (in apiQuickRequest) toRequest(defaultUnit formulation.Unit) (formulation.QuickRequest, error) {
	form := defaultQuickForm(defaultUnit)
	req := form.Request

	var err error
	if in.Unit != "" {
		if req.Unit, err = formulation.ParseUnit(in.Unit); err != nil {
			return req, err
		}
	}
	setIfPresent(&req.SuperfatPercent, in.Superfat)
	setIfPresent(&req.WaterPercent, in.WaterPercent)

	for i, o := range in.Oils {
		sap := o.Sap
		name := o.Name
		if sap == 0 {
			oil, ok := catalog.QuickOilByName(o.Name)
			if !ok {
				return req, fmt.Errorf("oil %d: unknown oil %q", i+1, o.Name)
			}
			sap, name = oil.Sap, oil.Name
		}
		req.Oils = append(req.Oils, formulation.QuickOil{Name: name, Sap: sap, Weight: o.Weight})
	}
	return req, nil
}

func setIfPresent(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func (s *server) handleAPIOils(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Oils())
}

func (s *server) handleAPIRecipes(w http.ResponseWriter, r *http.Request) {
	tab := catalog.TabByID(r.URL.Query().Get("tab"))
	writeJSON(w, http.StatusOK, s.catalog.Filter(tab))
}

func (s *server) handleAPIFormulation(w http.ResponseWriter, r *http.Request) {
	var in apiFormulationRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := in.toRequest(s.defaultUnit)
	if err == nil {
		err = formulation.Validate(req)
	}
	if err != nil {
		s.metrics.ObserveRejected()
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep := s.compute(calculatorForm{Title: in.Title, Request: req})
	warnings := rep.Warnings
	if warnings == nil {
		warnings = []formulation.Warning{}
	}
	writeJSON(w, http.StatusOK, apiFormulationResponse{
		ID:        rep.ID,
		Title:     rep.Title,
		CreatedAt: rep.CreatedAt,
		Result:    rep.Result,
		Warnings:  warnings,
		Share:     rep.Share(),
	})
}

func (s *server) handleAPIQuick(w http.ResponseWriter, r *http.Request) {
	var in apiQuickRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := in.toRequest(s.defaultUnit)
	if err == nil {
		err = formulation.ValidateQuick(req)
	}
	if err != nil {
		s.metrics.ObserveRejected()
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.ObserveQuick()
	writeJSON(w, http.StatusOK, formulation.QuickCalculate(req))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.New("request body too large")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
