package main

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/export"
	"github.com/Simplici0/soapworks/internal/formulation"
	"github.com/Simplici0/soapworks/internal/metrics"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	return newServer(cat, metrics.New(), formulation.UnitPound)
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func coconutOliveForm() url.Values {
	form := url.Values{}
	form.Set("lye_type", "NaOH")
	form.Set("unit", "lb")
	form.Set("total_oil_weight", "1")
	form.Set("water_method", "percentOfOils")
	form.Set("water_percent", "38")
	form.Set("superfat", "5")
	form.Set("fragrance_ratio", "0.5")
	form["oil_id"] = []string{"10", "19"}
	form["oil_percent"] = []string{"30", "70"}
	return form
}

func TestHomeListsRecipes(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	body := rr.Body.String()
	assert.Contains(t, body, "Natural Soap Recipes")
	assert.Contains(t, body, "Rustic Coffee Kitchen Bar")
	assert.Contains(t, body, "Rosemary Shampoo Bar")
	assert.Contains(t, body, `/recipes/classic-lavender-castile`)
}

func TestHomeFiltersByTab(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/?tab=hot", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Hot Process Soaps")
	assert.Contains(t, body, `href="/recipes/honey-oat-hot-process-soap"`)
	assert.NotContains(t, body, `href="/recipes/rosemary-shampoo-bar"`)
}

func TestHomeCalculatorTabRedirects(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/?tab=calculator", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/calculator", rr.Header().Get("Location"))
}

func TestRecipeDetailScalesIngredients(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/recipes/rustic-coffee-kitchen-bar?scale=2", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "32 oz olive oil")
	assert.Contains(t, body, "200%")
	assert.Contains(t, body, "Method &amp; Instructions")
}

func TestRecipeDetailClampsScale(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/recipes/rustic-coffee-kitchen-bar?scale=9", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "48 oz olive oil")
}

func TestRecipeDetailNotFound(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/recipes/no-such-soap", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRecipeJump(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/recipes?slug=rosemary-shampoo-bar", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/recipes/rosemary-shampoo-bar", rr.Header().Get("Location"))
}

func TestRecipePDF(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/recipes/classic-lavender-castile/pdf", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestCalculatorForm(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/calculator", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Soap Calculator")
	assert.Contains(t, body, "Olive Oil")
	assert.Contains(t, body, "No oils added yet.")
}

func TestCalculatorSubmitComputes(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, postForm("/calculator", coconutOliveForm()))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "0.14 lb")
	assert.Contains(t, body, "0.38 lb")
	assert.Contains(t, body, "0.5 oz")
	assert.Contains(t, body, "1.55 lb")
	assert.Contains(t, body, "Soap Qualities")
	assert.NotContains(t, body, "oil percentages add up to")
}

func TestCalculatorSubmitWarnsOnDrift(t *testing.T) {
	h := newTestServer(t).routes(false)

	form := coconutOliveForm()
	form["oil_percent"] = []string{"30", "60"}
	rr := serve(t, h, postForm("/calculator", form))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "oil percentages add up to 90.0%")
}

func TestCalculatorSubmitRejectsInvalidInput(t *testing.T) {
	h := newTestServer(t).routes(false)

	form := coconutOliveForm()
	form.Set("total_oil_weight", "0")
	rr := serve(t, h, postForm("/calculator", form))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "total oil weight must be greater than 0")

	form = coconutOliveForm()
	form.Set("water_method", "lyeConcentration")
	form.Set("lye_concentration", "0")
	rr = serve(t, h, postForm("/calculator", form))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "lye concentration must be greater than 0")
}

func TestCalculatorAddsOil(t *testing.T) {
	h := newTestServer(t).routes(false)

	form := coconutOliveForm()
	form.Set("action", "add")
	form.Set("add_oil_id", "8")
	rr := serve(t, h, postForm("/calculator", form))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<input type="hidden" name="oil_id" value="8">Castor Oil`)
	assert.Contains(t, rr.Body.String(), `<div class="success">Castor Oil added to the recipe.</div>`)
	assert.NotContains(t, rr.Body.String(), `<div class="error">`)

	form.Set("add_oil_id", "19")
	rr = serve(t, h, postForm("/calculator", form))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<div class="error">Olive Oil is already in the recipe.</div>`)
	assert.NotContains(t, rr.Body.String(), `<div class="success">`)
}

func TestCalculatorExports(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, postForm("/calculator/pdf", coconutOliveForm()))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))

	rr = serve(t, h, postForm("/calculator/xlsx", coconutOliveForm()))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))

	bad := coconutOliveForm()
	bad.Set("unit", "stone")
	rr = serve(t, h, postForm("/calculator/pdf", bad))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestQuickCalculator(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/quick", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Quick Lye Calculator")

	form := url.Values{}
	form.Set("unit", "oz")
	form.Set("superfat", "5")
	form.Set("water_percent", "38")
	form["quick_oil"] = []string{"Olive Oil"}
	form["quick_weight"] = []string{"10"}
	rr = serve(t, h, postForm("/quick", form))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "1.273 oz")
	assert.Contains(t, body, "3.8 oz")
	assert.Contains(t, body, "15.073 oz")
}

func TestAPIOilsAndRecipes(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/oils", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var oils []formulation.Oil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &oils))
	assert.Len(t, oils, 25)
	assert.Equal(t, "Almond Oil, sweet", oils[0].Name)

	rr = serve(t, h, httptest.NewRequest(http.MethodGet, "/api/recipes?tab=cold", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var recipes []catalog.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recipes))
	assert.Len(t, recipes, 3)
	for _, r := range recipes {
		assert.Equal(t, "Cold Process", r.Type)
	}
}

func TestAPIFormulation(t *testing.T) {
	h := newTestServer(t).routes(false)

	body := `{
		"title": "Test",
		"unit": "oz",
		"totalOilWeight": 10,
		"oils": [
			{"oilId": 10, "percentage": 30},
			{"oilId": 19, "amount": 7}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/formulations", strings.NewReader(body))
	rr := serve(t, h, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp apiFormulationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, resp.ID, resp.Share.ID)
	assert.Equal(t, "Test", resp.Title)
	assert.Empty(t, resp.Warnings)
	assert.Contains(t, rr.Body.String(), `"warnings":[]`)

	res := resp.Result
	assert.InDelta(t, 1.4193, res.Lye, 1e-9)
	assert.InDelta(t, 3.8, res.Water, 1e-9)
	assert.InDelta(t, 0.3125, res.Fragrance, 1e-9)
	assert.Equal(t, formulation.UnitOunce, res.FragranceUnit)
	assert.InDelta(t, 15.5318, res.TotalBatchWeight, 1e-9)
	assert.InDelta(t, 70, res.Oils[1].Percentage, 1e-9)
}

func TestAPIFormulationWarnings(t *testing.T) {
	h := newTestServer(t).routes(false)

	body := `{"totalOilWeight": 1, "oils": [{"oilId": 10, "percentage": 50}, {"oilId": 999, "percentage": 50}]}`
	rr := serve(t, h, httptest.NewRequest(http.MethodPost, "/api/formulations", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp apiFormulationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []int{999}, resp.Result.MissingOils)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, formulation.WarnUnknownOil, resp.Warnings[0].Kind)
}

func TestAPIFormulationRejects(t *testing.T) {
	h := newTestServer(t).routes(false)

	cases := map[string]string{
		"bad json":      `{"totalOilWeight": `,
		"unknown field": `{"totalOilWeight": 1, "colour": "red"}`,
		"zero weight":   `{"totalOilWeight": 0}`,
		"bad unit":      `{"totalOilWeight": 1, "unit": "kg"}`,
		"no quantity":   `{"totalOilWeight": 1, "oils": [{"oilId": 10}]}`,
		"concentration": `{"totalOilWeight": 1, "water": {"method": "lyeConcentration", "lyeConcentration": 0}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := serve(t, h, httptest.NewRequest(http.MethodPost, "/api/formulations", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var payload map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
			assert.NotEmpty(t, payload["error"])
		})
	}
}

func TestAPIQuick(t *testing.T) {
	h := newTestServer(t).routes(false)

	body := `{"unit": "g", "oils": [{"name": "Olive Oil", "weight": 1000}, {"name": "Custom", "sap": 0.2, "weight": 100}]}`
	rr := serve(t, h, httptest.NewRequest(http.MethodPost, "/api/quick", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res formulation.QuickResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, formulation.UnitGram, res.Unit)
	assert.InDelta(t, 1100, res.TotalOilWeight, 1e-9)
	assert.InDelta(t, 154, res.RawLye, 1e-9)
	assert.InDelta(t, 154*0.95, res.Lye, 1e-9)
	assert.InDelta(t, 418, res.Water, 1e-9)

	rr = serve(t, h, httptest.NewRequest(http.MethodPost, "/api/quick", strings.NewReader(`{"oils": [{"name": "Mystery", "weight": 1}]}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	negative := `{"unit": "g", "oils": [{"name": "Olive Oil", "weight": 1000}, {"name": "Castor Oil", "weight": -100}]}`
	rr = serve(t, h, httptest.NewRequest(http.MethodPost, "/api/quick", strings.NewReader(negative)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "oil weight must not be negative")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rr := serve(t, srv.routes(false), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	h := srv.routes(true)
	serve(t, h, postForm("/calculator", coconutOliveForm()))
	rr = serve(t, h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `soapworks_formulations_total{lye_type="NaOH",water_method="percentOfOils"} 1`)
	assert.Contains(t, rr.Body.String(), `route="/calculator"`)
}

func TestStaticAssets(t *testing.T) {
	h := newTestServer(t).routes(false)

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "nav.tabs")
}

func TestTemplateNumMatchesExports(t *testing.T) {
	tmpl := template.Must(template.New("n").Funcs(templateFuncs).Parse(`{{num .V .P}}`))

	for _, c := range []struct {
		V float64
		P int
	}{{0.14193, 2}, {1.5, 3}, {120, 0}, {-0.0001, 2}, {15.0001, 2}} {
		var buf bytes.Buffer
		require.NoError(t, tmpl.Execute(&buf, c))
		assert.Equal(t, export.FormatNumber(c.V, c.P), buf.String())
	}
}
