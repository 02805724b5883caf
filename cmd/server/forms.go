package main

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/formulation"
)

const (
	editPercent = "percent"
	editAmount  = "amount"
)

// calculatorForm is the state of the formulation form between requests.
type calculatorForm struct {
	Title    string
	EditMode string
	Request  formulation.Request
}

func defaultCalculatorForm(unit formulation.Unit) calculatorForm {
	req := formulation.DefaultRequest()
	req.Unit = unit
	return calculatorForm{EditMode: editPercent, Request: req}
}

// parseCalculatorForm reads the formulation form. On error the returned
// form holds every field parsed so far so the page can be re-rendered.
func parseCalculatorForm(r *http.Request, defaultUnit formulation.Unit) (calculatorForm, error) {
	form := defaultCalculatorForm(defaultUnit)
	form.Title = strings.TrimSpace(r.FormValue("title"))
	if r.FormValue("edit_mode") == editAmount {
		form.EditMode = editAmount
	}

	req := &form.Request
	var err error
	if raw := r.FormValue("lye_type"); raw != "" {
		if req.LyeType, err = formulation.ParseLyeType(raw); err != nil {
			return form, err
		}
	}
	if raw := r.FormValue("unit"); raw != "" {
		if req.Unit, err = formulation.ParseUnit(raw); err != nil {
			return form, err
		}
	}
	if req.TotalOilWeight, err = parsePositiveFloat(r.FormValue("total_oil_weight"), "total oil weight"); err != nil {
		return form, err
	}
	if raw := r.FormValue("water_method"); raw != "" {
		if req.Water.Method, err = formulation.ParseWaterMethod(raw); err != nil {
			return form, err
		}
	}
	if req.Water.PercentOfOils, err = parseOptionalFloat(r.FormValue("water_percent"), "water percent", req.Water.PercentOfOils); err != nil {
		return form, err
	}
	if req.Water.LyeConcentration, err = parseOptionalFloat(r.FormValue("lye_concentration"), "lye concentration", req.Water.LyeConcentration); err != nil {
		return form, err
	}
	if req.Water.WaterLyeRatio, err = parseOptionalFloat(r.FormValue("water_lye_ratio"), "water to lye ratio", req.Water.WaterLyeRatio); err != nil {
		return form, err
	}
	if req.SuperfatPercent, err = parseFloat(r.FormValue("superfat"), "superfat"); err != nil {
		return form, err
	}
	if req.FragranceRatio, err = parseNonNegativeFloat(r.FormValue("fragrance_ratio"), "fragrance ratio"); err != nil {
		return form, err
	}

	req.Oils, err = parseOilRows(r, form.EditMode, req.TotalOilWeight)
	return form, err
}

// parseOilRows reads the aligned oil_id, oil_percent and oil_amount
// fields. In amount mode the typed masses are converted to percentages.
func parseOilRows(r *http.Request, mode string, totalOilWeight float64) (formulation.Entries, error) {
	ids := r.Form["oil_id"]
	percents := r.Form["oil_percent"]
	amounts := r.Form["oil_amount"]

	entries := make(formulation.Entries, 0, len(ids))
	for i, rawID := range ids {
		id, err := strconv.Atoi(strings.TrimSpace(rawID))
		if err != nil || id <= 0 {
			return entries, fmt.Errorf("oil %d has an invalid id", i+1)
		}

		field := fmt.Sprintf("oil %d", i+1)
		if mode == editAmount {
			amount, err := parseOptionalFloat(formIndex(amounts, i), field+" weight", 0)
			if err != nil {
				return entries, err
			}
			if amount < 0 {
				return entries, fmt.Errorf("%s weight must be greater than or equal to 0", field)
			}
			entries = append(entries, formulation.EntryFromAmount(id, amount, totalOilWeight))
			continue
		}

		pct, err := parseOptionalFloat(formIndex(percents, i), field+" percentage", 0)
		if err != nil {
			return entries, err
		}
		if pct < 0 || pct > 100 {
			return entries, fmt.Errorf("%s percentage must be between 0 and 100", field)
		}
		entries = append(entries, formulation.Entry{OilID: id, Percentage: pct})
	}
	return entries, nil
}

// notice is the one-line feedback shown above a re-rendered form.
type notice struct {
	Success string
	Error   string
}

// applyCalculatorAction handles the add and remove buttons of the oil
// table and reports what happened.
func applyCalculatorAction(r *http.Request, form *calculatorForm, oils formulation.OilSource) notice {
	if raw := r.FormValue("remove"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err != nil || i < 0 || i >= len(form.Request.Oils) {
			return notice{}
		}
		name := fmt.Sprintf("Unknown oil #%d", form.Request.Oils[i].OilID)
		if oil, ok := oils.Oil(form.Request.Oils[i].OilID); ok {
			name = oil.Name
		}
		form.Request.Oils = form.Request.Oils.Remove(i)
		return notice{Success: name + " removed from the recipe."}
	}

	if r.FormValue("action") != "add" {
		return notice{}
	}
	id, err := strconv.Atoi(r.FormValue("add_oil_id"))
	if err != nil || id <= 0 {
		return notice{Error: "Choose an oil to add."}
	}
	oil, ok := oils.Oil(id)
	if !ok {
		return notice{Error: "That oil is not in the catalog."}
	}
	entries, added := form.Request.Oils.Add(id)
	if !added {
		return notice{Error: oil.Name + " is already in the recipe."}
	}
	form.Request.Oils = entries
	return notice{Success: oil.Name + " added to the recipe."}
}

type quickRow struct {
	Name   string
	Weight float64
}

type quickForm struct {
	Request formulation.QuickRequest
	Rows    []quickRow
}

func defaultQuickForm(unit formulation.Unit) quickForm {
	return quickForm{
		Request: formulation.QuickRequest{
			Unit:            unit,
			SuperfatPercent: 5,
			WaterPercent:    formulation.DefaultWaterSettings().PercentOfOils,
		},
		Rows: []quickRow{{}},
	}
}

// parseQuickForm reads the quick calculator. Rows without an oil are kept
// for re-rendering but left out of the calculation.
func parseQuickForm(r *http.Request, defaultUnit formulation.Unit) (quickForm, error) {
	form := defaultQuickForm(defaultUnit)
	form.Rows = nil

	req := &form.Request
	var err error
	if raw := r.FormValue("unit"); raw != "" {
		if req.Unit, err = formulation.ParseUnit(raw); err != nil {
			return form, err
		}
	}
	if req.SuperfatPercent, err = parseFloat(r.FormValue("superfat"), "superfat"); err != nil {
		return form, err
	}
	if req.WaterPercent, err = parseNonNegativeFloat(r.FormValue("water_percent"), "water percent"); err != nil {
		return form, err
	}

	names := r.Form["quick_oil"]
	weights := r.Form["quick_weight"]
	for i, name := range names {
		name = strings.TrimSpace(name)
		weight, err := parseOptionalFloat(formIndex(weights, i), fmt.Sprintf("row %d weight", i+1), 0)
		if err != nil {
			return form, err
		}
		if weight < 0 {
			return form, fmt.Errorf("row %d weight must be greater than or equal to 0", i+1)
		}
		form.Rows = append(form.Rows, quickRow{Name: name, Weight: weight})
		if name == "" {
			continue
		}
		oil, ok := catalog.QuickOilByName(name)
		if !ok {
			return form, fmt.Errorf("row %d: unknown oil %q", i+1, name)
		}
		req.Oils = append(req.Oils, formulation.QuickOil{Name: oil.Name, Sap: oil.Sap, Weight: weight})
	}

	if r.FormValue("action") == "add" || len(form.Rows) == 0 {
		form.Rows = append(form.Rows, quickRow{})
	}
	if raw := r.FormValue("remove"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil && i >= 0 && i < len(form.Rows) && len(form.Rows) > 1 {
			form.Rows = append(form.Rows[:i], form.Rows[i+1:]...)
			req.Oils = quickOilsFromRows(form.Rows)
		}
	}

	return form, nil
}

func quickOilsFromRows(rows []quickRow) []formulation.QuickOil {
	oils := make([]formulation.QuickOil, 0, len(rows))
	for _, row := range rows {
		oil, ok := catalog.QuickOilByName(row.Name)
		if !ok {
			continue
		}
		oils = append(oils, formulation.QuickOil{Name: oil.Name, Sap: oil.Sap, Weight: row.Weight})
	}
	return oils
}

func formIndex(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func parseFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return value, nil
}

func parseOptionalFloat(raw, field string, fallback float64) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return parseFloat(raw, field)
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := parseFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	value, err := parseFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}
