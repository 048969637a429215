package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMonitor_RecordStoreOp(t *testing.T) {
	m := NewMonitor()
	m.RecordStoreOp("ingredient", "add", OutcomeOK)
	m.RecordStoreOp("ingredient", "add", OutcomeOK)
	m.RecordStoreOp("ingredient", "update", OutcomeMiss)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.storeOps.WithLabelValues("ingredient", "add", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("ingredient", "update", OutcomeMiss)))
}

func TestMonitor_RecordCalculation(t *testing.T) {
	m := NewMonitor()
	m.RecordCalculation(OutcomeOK, 4.375)
	m.RecordCalculation(OutcomeDangling, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues(OutcomeDangling)))

	// Only the successful calculation is observed.
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "recipecost_recipe_final_price_count 1")
	assert.Contains(t, w.Body.String(), "recipecost_recipe_final_price_sum 4.375")
}

func TestMonitor_Handler(t *testing.T) {
	m := NewMonitor()
	m.SetEntityCount("recipe", 3)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `recipecost_catalog_entities{entity="recipe"} 3`)
}
