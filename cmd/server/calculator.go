package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/export"
	"github.com/Simplici0/soapworks/internal/formulation"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type oilRow struct {
	Index      int
	OilID      int
	Name       string
	Percentage float64
	Amount     float64
}

type qualityRow struct {
	Name    string
	Value   float64
	Low     float64
	High    float64
	InRange bool
}

type calculatorViewData struct {
	baseViewData
	Form          calculatorForm
	LyeTypes      []option
	Units         []option
	WaterMethods  []option
	Oils          []formulation.Oil
	Rows          []oilRow
	PercentTotal  float64
	AmountTotal   float64
	PercentOK     bool
	Report        *export.Report
	WaterLabel    string
	LyeLabel      string
	Qualities     []qualityRow
	FattyAcids    []formulation.NamedValue
	FragranceUnit formulation.Unit
}

type quickViewData struct {
	baseViewData
	Form     quickForm
	Units    []option
	OilNames []string
	Result   *formulation.QuickResult
}

func (s *server) handleCalculatorForm(w http.ResponseWriter, r *http.Request) {
	s.renderCalculator(w, http.StatusOK, defaultCalculatorForm(s.defaultUnit), nil, notice{})
}

func (s *server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, err := parseCalculatorForm(r, s.defaultUnit)
	if err != nil {
		s.metrics.ObserveRejected()
		s.renderCalculator(w, http.StatusBadRequest, form, nil, notice{Error: err.Error()})
		return
	}

	msg := applyCalculatorAction(r, &form, s.catalog)
	if err := formulation.Validate(form.Request); err != nil {
		s.metrics.ObserveRejected()
		s.renderCalculator(w, http.StatusBadRequest, form, nil, notice{Error: err.Error()})
		return
	}

	rep := s.compute(form)
	s.renderCalculator(w, http.StatusOK, form, &rep, msg)
}

func (s *server) handleCalculatorPDF(w http.ResponseWriter, r *http.Request) {
	s.exportCalculator(w, r, "pdf", "application/pdf", export.FormulationPDF)
}

func (s *server) handleCalculatorXLSX(w http.ResponseWriter, r *http.Request) {
	s.exportCalculator(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.FormulationXLSX)
}

func (s *server) exportCalculator(w http.ResponseWriter, r *http.Request, format, contentType string, write func(io.Writer, export.Report) error) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, err := parseCalculatorForm(r, s.defaultUnit)
	if err == nil {
		err = formulation.Validate(form.Request)
	}
	if err != nil {
		s.metrics.ObserveRejected()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep := s.compute(form)
	var buf bytes.Buffer
	if err := write(&buf, rep); err != nil {
		log.Printf("export %s %s: %v", format, rep.ID, err)
		http.Error(w, "failed to export formulation", http.StatusInternalServerError)
		return
	}

	s.metrics.ObserveExport(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "formulation-"+rep.ID+"."+format))
	_, _ = buf.WriteTo(w)
}

// compute runs a validated formulation and records it.
func (s *server) compute(form calculatorForm) export.Report {
	res := s.engine.Compute(form.Request)
	warnings := formulation.Warnings(form.Request, res)
	s.metrics.ObserveFormulation(form.Request, warnings)
	return export.NewReport(form.Title, form.Request, res, warnings)
}

func (s *server) renderCalculator(w http.ResponseWriter, status int, form calculatorForm, rep *export.Report, msg notice) {
	req := form.Request
	base := newBaseViewData(catalog.TabByID(catalog.CalculatorTab))
	base.PageTitle = "Soap Calculator"
	base.ErrorMessage = msg.Error
	base.SuccessMessage = msg.Success

	data := calculatorViewData{
		baseViewData: base,
		Form:         form,
		LyeTypes:     lyeTypeOptions(req.LyeType),
		Units:        unitOptions(req.Unit),
		WaterMethods: waterMethodOptions(req.Water.Method),
		Oils:         s.catalog.Oils(),
		PercentTotal: req.Oils.PercentTotal(),
		AmountTotal:  req.Oils.AmountTotal(req.TotalOilWeight),
		Report:       rep,
		WaterLabel:   export.WaterLabel(req.Water),
		LyeLabel:     req.LyeType.Label(),
	}
	data.PercentOK = len(req.Oils) == 0 || math.Abs(data.PercentTotal-100) <= formulation.PercentTolerance

	for i, entry := range req.Oils {
		name := fmt.Sprintf("Unknown oil #%d", entry.OilID)
		if oil, ok := s.catalog.Oil(entry.OilID); ok {
			name = oil.Name
		}
		data.Rows = append(data.Rows, oilRow{
			Index:      i,
			OilID:      entry.OilID,
			Name:       name,
			Percentage: entry.Percentage,
			Amount:     entry.Amount(req.TotalOilWeight),
		})
	}

	if rep != nil {
		res := rep.Result
		data.FragranceUnit = res.FragranceUnit
		data.FattyAcids = res.FattyAcids.Named()
		for _, qr := range formulation.QualityRanges {
			v := res.Qualities.Value(qr.Name)
			data.Qualities = append(data.Qualities, qualityRow{
				Name:    qr.Name,
				Value:   v,
				Low:     qr.Low,
				High:    qr.High,
				InRange: qr.Contains(v),
			})
		}
	}

	s.renderTemplate(w, status, "calculator.html", data)
}

func (s *server) handleQuickForm(w http.ResponseWriter, r *http.Request) {
	s.renderQuick(w, http.StatusOK, defaultQuickForm(s.defaultUnit), nil, "")
}

func (s *server) handleQuickSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, err := parseQuickForm(r, s.defaultUnit)
	if err == nil {
		err = formulation.ValidateQuick(form.Request)
	}
	if err != nil {
		s.metrics.ObserveRejected()
		s.renderQuick(w, http.StatusBadRequest, form, nil, err.Error())
		return
	}

	res := formulation.QuickCalculate(form.Request)
	s.metrics.ObserveQuick()
	s.renderQuick(w, http.StatusOK, form, &res, "")
}

func (s *server) renderQuick(w http.ResponseWriter, status int, form quickForm, res *formulation.QuickResult, errMessage string) {
	base := newBaseViewData(catalog.TabByID(catalog.CalculatorTab))
	base.PageTitle = "Quick Lye Calculator"
	base.ActiveTab = "quick"
	base.HeroTitle = "Quick Lye Calculator"
	base.HeroDescription = "Enter oil weights directly for a fast NaOH and water estimate."
	base.ErrorMessage = errMessage

	names := make([]string, 0, len(catalog.QuickOils))
	for _, oil := range catalog.QuickOils {
		names = append(names, oil.Name)
	}

	s.renderTemplate(w, status, "quick.html", quickViewData{
		baseViewData: base,
		Form:         form,
		Units:        unitOptions(form.Request.Unit),
		OilNames:     names,
		Result:       res,
	})
}

func lyeTypeOptions(selected formulation.LyeType) []option {
	types := []formulation.LyeType{formulation.LyeNaOH, formulation.LyeKOH, formulation.LyeKOH90}
	opts := make([]option, 0, len(types))
	for _, t := range types {
		opts = append(opts, option{Value: string(t), Label: t.Label(), Selected: t == selected})
	}
	return opts
}

func unitOptions(selected formulation.Unit) []option {
	return []option{
		{Value: string(formulation.UnitPound), Label: "Pounds", Selected: selected == formulation.UnitPound},
		{Value: string(formulation.UnitOunce), Label: "Ounces", Selected: selected == formulation.UnitOunce},
		{Value: string(formulation.UnitGram), Label: "Grams", Selected: selected == formulation.UnitGram},
	}
}

func waterMethodOptions(selected formulation.WaterMethod) []option {
	return []option{
		{Value: string(formulation.WaterPercentOfOils), Label: "Water as % of oils", Selected: selected == formulation.WaterPercentOfOils},
		{Value: string(formulation.WaterLyeConcentration), Label: "Lye concentration", Selected: selected == formulation.WaterLyeConcentration},
		{Value: string(formulation.WaterLyeRatio), Label: "Water : lye ratio", Selected: selected == formulation.WaterLyeRatio},
	}
}
