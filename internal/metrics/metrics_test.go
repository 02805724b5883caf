package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/soapworks/internal/formulation"
)

func TestObserveFormulation(t *testing.T) {
	m := New()

	req := formulation.DefaultRequest()
	m.ObserveFormulation(req, []formulation.Warning{
		{Kind: formulation.WarnPercentageDrift},
		{Kind: formulation.WarnUnknownOil},
		{Kind: formulation.WarnUnknownOil},
	})
	m.ObserveFormulation(req, nil)
	m.ObserveQuick()
	m.ObserveRejected()
	m.ObserveExport("pdf")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.formulations.WithLabelValues("NaOH", "percentOfOils")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.warnings.WithLabelValues("unknown-oil")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.warnings.WithLabelValues("percentage-drift")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quick))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("pdf")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/recipes/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	for _, slug := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/recipes/"+slug, nil))
		require.Equal(t, http.StatusTeapot, rr.Code)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.requests))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `soapworks_http_request_duration_seconds_count{method="GET",route="/recipes/{slug}",status="418"} 3`), body)
}
