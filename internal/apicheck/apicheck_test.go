package apicheck_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"placeholder/internal/apicheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateItem_ValidProduct(t *testing.T) {
	item := map[string]interface{}{
		"id":     float64(1),
		"title":  "Backpack",
		"price":  109.95,
		"rating": map[string]interface{}{"rate": 3.9},
	}
	assert.Empty(t, apicheck.ValidateItem(item, 1))
}

func TestValidateItem_EmptyTitleOnly(t *testing.T) {
	item := map[string]interface{}{
		"title":  "",
		"price":  float64(5),
		"rating": map[string]interface{}{"rate": float64(4)},
	}
	violations := apicheck.ValidateItem(item, 1)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Empty title")
}

func TestValidateItem_AccumulatesAllViolations(t *testing.T) {
	// No title key, negative price, rating over 5: three independent failures.
	item := map[string]interface{}{
		"price":  float64(-1),
		"rating": map[string]interface{}{"rate": float64(6)},
	}
	violations := apicheck.ValidateItem(item, 1)
	require.Len(t, violations, 3)
	assert.Contains(t, violations[0], "Missing title field")
	assert.Contains(t, violations[1], "Negative price")
	assert.Contains(t, violations[2], "Rating exceeds 5")
}

func TestValidateItem_TypeChecks(t *testing.T) {
	item := map[string]interface{}{
		"title":  float64(42),
		"price":  "free",
		"rating": "five stars",
	}
	violations := apicheck.ValidateItem(item, 1)
	require.Len(t, violations, 3)
	assert.Contains(t, violations[0], "Title is not a string")
	assert.Contains(t, violations[1], "Price is not a number")
	assert.Contains(t, violations[2], "Rating is not an object")
}

func TestValidateItem_MissingRatingRate(t *testing.T) {
	item := map[string]interface{}{
		"title":  "Hat",
		"price":  float64(10),
		"rating": map[string]interface{}{"count": float64(12)},
	}
	violations := apicheck.ValidateItem(item, 1)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Missing rating.rate field")
}

func TestValidateItem_BlankTitleAfterTrimming(t *testing.T) {
	item := map[string]interface{}{
		"title":  "   ",
		"price":  float64(1),
		"rating": map[string]interface{}{"rate": float64(1)},
	}
	violations := apicheck.ValidateItem(item, 1)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Empty title")
}

func TestValidateItem_LabelFallsBackToPosition(t *testing.T) {
	item := map[string]interface{}{
		"price":  float64(1),
		"rating": map[string]interface{}{"rate": float64(1)},
	}
	violations := apicheck.ValidateItem(item, 4)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Product 4")

	item["id"] = float64(9)
	violations = apicheck.ValidateItem(item, 4)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Product 9")
}

func TestValidate_ReportTotals(t *testing.T) {
	items := []map[string]interface{}{
		{"id": float64(1), "title": "Good", "price": float64(3), "rating": map[string]interface{}{"rate": float64(4)}},
		{"id": float64(2), "title": "", "price": float64(3), "rating": map[string]interface{}{"rate": float64(4)}},
		{"id": float64(3), "price": float64(-1), "rating": map[string]interface{}{"rate": float64(6)}},
	}

	report := apicheck.Validate(items)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Valid)
	assert.Equal(t, 2, report.Defective)
	assert.Equal(t, 4, report.TotalViolations)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "Product 2", report.Results[0].Label)
	assert.Equal(t, "Product 3", report.Results[1].Label)
}

func TestRun_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "title": "Backpack", "price": 109.95, "rating": {"rate": 3.9}},
			{"id": 2, "title": "", "price": -5, "rating": {"rate": 6}}
		]`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := apicheck.Run(&out, server.URL, time.Second)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Found 2 products to validate")
	assert.Contains(t, text, "Product 2 has 3 validation error(s)")
	assert.Contains(t, text, "Total products tested: 2")
	assert.Contains(t, text, "Valid products: 1")
	assert.Contains(t, text, "Products with defects: 1")
	assert.Contains(t, text, "Total validation errors: 3")
}

func TestRun_NonOKStatusHaltsPipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var out bytes.Buffer
	err := apicheck.Run(&out, server.URL, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected status code 200")
}

func TestRun_NonJSONBodyHaltsPipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := apicheck.Run(&out, server.URL, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestRun_TransportFailure(t *testing.T) {
	var out bytes.Buffer
	err := apicheck.Run(&out, "http://127.0.0.1:1", 200*time.Millisecond)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "request failed"))
}
