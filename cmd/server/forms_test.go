package main

import (
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Simplici0/soapworks/internal/formulation"
)

func newFormRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/calculator", nil)
	req.Form = form
	return req
}

func calculatorValues() url.Values {
	form := url.Values{}
	form.Set("title", "  Castile  ")
	form.Set("lye_type", "KOH90")
	form.Set("unit", "oz")
	form.Set("total_oil_weight", "10")
	form.Set("water_method", "waterLyeRatio")
	form.Set("water_lye_ratio", "2.5")
	form.Set("superfat", "-2")
	form.Set("fragrance_ratio", "0.7")
	form["oil_id"] = []string{"10", "19"}
	form["oil_percent"] = []string{"30", "70"}
	form["oil_amount"] = []string{"", ""}
	return form
}

func TestParseCalculatorForm_Success(t *testing.T) {
	form, err := parseCalculatorForm(newFormRequest(calculatorValues()), formulation.UnitPound)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	req := form.Request
	if form.Title != "Castile" {
		t.Fatalf("expected trimmed title, got %q", form.Title)
	}
	if req.LyeType != formulation.LyeKOH90 || req.Unit != formulation.UnitOunce {
		t.Fatalf("unexpected lye/unit: %+v", req)
	}
	if req.Water.Method != formulation.WaterLyeRatio || req.Water.WaterLyeRatio != 2.5 {
		t.Fatalf("unexpected water settings: %+v", req.Water)
	}
	if req.Water.PercentOfOils != 38 || req.Water.LyeConcentration != 33 {
		t.Fatalf("blank water fields should keep defaults: %+v", req.Water)
	}
	if req.SuperfatPercent != -2 {
		t.Fatalf("negative superfat should pass through, got %v", req.SuperfatPercent)
	}
	if len(req.Oils) != 2 || req.Oils[0].OilID != 10 || req.Oils[1].Percentage != 70 {
		t.Fatalf("unexpected oils: %+v", req.Oils)
	}
}

func TestParseCalculatorForm_AmountMode(t *testing.T) {
	values := calculatorValues()
	values.Set("edit_mode", "amount")
	values["oil_percent"] = []string{"99", "99"}
	values["oil_amount"] = []string{"2.5", "7.5"}

	form, err := parseCalculatorForm(newFormRequest(values), formulation.UnitPound)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if form.EditMode != editAmount {
		t.Fatalf("expected amount mode, got %q", form.EditMode)
	}
	if math.Abs(form.Request.Oils[0].Percentage-25) > 1e-9 || math.Abs(form.Request.Oils[1].Percentage-75) > 1e-9 {
		t.Fatalf("amounts were not converted to percentages: %+v", form.Request.Oils)
	}
}

func TestParseCalculatorForm_InvalidNumbers(t *testing.T) {
	cases := map[string]func(url.Values){
		"weight text":      func(v url.Values) { v.Set("total_oil_weight", "abc") },
		"weight zero":      func(v url.Values) { v.Set("total_oil_weight", "0") },
		"superfat nan":     func(v url.Values) { v.Set("superfat", "NaN") },
		"fragrance":        func(v url.Values) { v.Set("fragrance_ratio", "-1") },
		"oil id":           func(v url.Values) { v["oil_id"] = []string{"x", "19"} },
		"oil percent":      func(v url.Values) { v["oil_percent"] = []string{"130", "70"} },
		"unknown lye type": func(v url.Values) { v.Set("lye_type", "LiOH") },
		"unknown unit":     func(v url.Values) { v.Set("unit", "kg") },
		"unknown method":   func(v url.Values) { v.Set("water_method", "guess") },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			values := calculatorValues()
			mutate(values)
			if _, err := parseCalculatorForm(newFormRequest(values), formulation.UnitPound); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestParseCalculatorForm_DefaultUnit(t *testing.T) {
	values := calculatorValues()
	values.Del("unit")

	form, err := parseCalculatorForm(newFormRequest(values), formulation.UnitGram)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if form.Request.Unit != formulation.UnitGram {
		t.Fatalf("expected default unit g, got %q", form.Request.Unit)
	}
}

func TestApplyCalculatorAction(t *testing.T) {
	oils := formulation.NewOilMap(
		formulation.Oil{ID: 8, Name: "Castor Oil", Sap: 0.128},
		formulation.Oil{ID: 10, Name: "Coconut Oil", Sap: 0.183},
	)

	values := calculatorValues()
	values.Set("action", "add")
	values.Set("add_oil_id", "8")
	form, err := parseCalculatorForm(newFormRequest(values), formulation.UnitPound)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	msg := applyCalculatorAction(newFormRequest(values), &form, oils)
	if msg.Success != "Castor Oil added to the recipe." || msg.Error != "" {
		t.Fatalf("unexpected notice %+v", msg)
	}
	if len(form.Request.Oils) != 3 || form.Request.Oils[2].OilID != 8 || form.Request.Oils[2].Percentage != 0 {
		t.Fatalf("castor oil was not appended: %+v", form.Request.Oils)
	}

	values.Set("add_oil_id", "10")
	msg = applyCalculatorAction(newFormRequest(values), &form, oils)
	if msg.Error != "Coconut Oil is already in the recipe." || msg.Success != "" {
		t.Fatalf("expected duplicate error, got %+v", msg)
	}

	values.Set("add_oil_id", "404")
	if msg := applyCalculatorAction(newFormRequest(values), &form, oils); msg.Error == "" {
		t.Fatalf("expected error for unknown oil")
	}

	removeValues := url.Values{}
	removeValues.Set("remove", "0")
	msg = applyCalculatorAction(newFormRequest(removeValues), &form, oils)
	if msg.Success != "Coconut Oil removed from the recipe." {
		t.Fatalf("unexpected remove notice %+v", msg)
	}
	if len(form.Request.Oils) != 2 || form.Request.Oils[0].OilID != 19 {
		t.Fatalf("first oil was not removed: %+v", form.Request.Oils)
	}
}

func TestParseQuickForm(t *testing.T) {
	values := url.Values{}
	values.Set("unit", "oz")
	values.Set("superfat", "5")
	values.Set("water_percent", "38")
	values["quick_oil"] = []string{"Olive Oil", "", "Castor Oil"}
	values["quick_weight"] = []string{"10", "", "2"}

	form, err := parseQuickForm(newFormRequest(values), formulation.UnitPound)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(form.Rows) != 3 {
		t.Fatalf("expected blank row to be kept for display, got %+v", form.Rows)
	}
	if len(form.Request.Oils) != 2 || form.Request.Oils[0].Sap != 0.134 || form.Request.Oils[1].Weight != 2 {
		t.Fatalf("unexpected quick oils: %+v", form.Request.Oils)
	}

	values.Set("remove", "0")
	form, err = parseQuickForm(newFormRequest(values), formulation.UnitPound)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(form.Request.Oils) != 1 || form.Request.Oils[0].Name != "Castor Oil" {
		t.Fatalf("remove did not drop the olive row: %+v", form.Request.Oils)
	}
}

func TestParseQuickForm_UnknownOil(t *testing.T) {
	values := url.Values{}
	values.Set("superfat", "5")
	values.Set("water_percent", "38")
	values["quick_oil"] = []string{"Unobtainium"}
	values["quick_weight"] = []string{"1"}

	if _, err := parseQuickForm(newFormRequest(values), formulation.UnitPound); err == nil {
		t.Fatalf("expected unknown oil error")
	}
}
