package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/unit-converter-service/internal/adapter/http"
	"github.com/couchcryptid/unit-converter-service/internal/converter"
	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/couchcryptid/unit-converter-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readinessOverride wraps a real service with a fixed readiness result.
type readinessOverride struct {
	*converter.Service
	err error
}

func (r *readinessOverride) CheckReadiness(_ context.Context) error { return r.err }

// failingConverter returns a non-domain error from Convert.
type failingConverter struct {
	*converter.Service
}

func (failingConverter) Convert(context.Context, domain.Request) (domain.Result, error) {
	return domain.Result{}, fmt.Errorf("boom")
}

func newService() *converter.Service {
	return converter.New(slog.Default(), observability.NewMetricsForTesting(), converter.WithCache(16))
}

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &readinessOverride{Service: newService(), err: readyErr}, slog.Default())
}

func do(srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- health ---

func TestHealthzReturns200(t *testing.T) {
	rec := do(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := do(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := do(newTestServer(fmt.Errorf("kafka brokers unreachable")), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// --- pages ---

func TestIndexPage(t *testing.T) {
	rec := do(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `href="/length"`)
	assert.Contains(t, body, `href="/weight"`)
	assert.Contains(t, body, `href="/temperature"`)
}

func TestFormPages(t *testing.T) {
	tests := []struct {
		path  string
		title string
		unit  string
	}{
		{"/length", "Length conversion", `<option value="kilometer">`},
		{"/weight", "Weight conversion", `<option value="pound">`},
		{"/temperature", "Temperature conversion", `<option value="kelvin">`},
		{"/Temperature", "Temperature conversion", `<option value="celsius">`},
	}
	srv := newTestServer(nil)

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(srv, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, tt.title)
			assert.Contains(t, body, tt.unit)
			assert.Contains(t, body, `action="/result/`)
			assert.Contains(t, body, `name="value"`)
		})
	}
}

func TestFormPage_UnknownCategory(t *testing.T) {
	rec := do(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/volume", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResultPage_GetShowsPlaceholder(t *testing.T) {
	rec := do(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/result/length", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No conversion yet.")
}

func TestResultPage_GetUnknownCategory(t *testing.T) {
	rec := do(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/result/volume", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResultPage_Post(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		form     url.Values
		expected string
	}{
		{
			name:     "length",
			path:     "/result/length",
			form:     url.Values{"value": {"1"}, "from_unit": {"kilometer"}, "to_unit": {"meter"}},
			expected: "1 kilometer = 1000 meter",
		},
		{
			name:     "temperature",
			path:     "/result/temperature",
			form:     url.Values{"value": {"0"}, "from_unit": {"celsius"}, "to_unit": {"fahrenheit"}},
			expected: "0 celsius = 32 fahrenheit",
		},
		{
			name:     "empty value",
			path:     "/result/weight",
			form:     url.Values{"value": {"  "}, "from_unit": {"gram"}, "to_unit": {"gram"}},
			expected: "Please enter a value to convert.",
		},
		{
			name:     "invalid number",
			path:     "/result/weight",
			form:     url.Values{"value": {"abc"}, "from_unit": {"gram"}, "to_unit": {"gram"}},
			expected: "Invalid number entered.",
		},
		{
			name:     "unknown unit",
			path:     "/result/length",
			form:     url.Values{"value": {"1"}, "from_unit": {"parsec"}, "to_unit": {"meter"}},
			expected: "Unknown unit: parsec.",
		},
		{
			name:     "unknown category",
			path:     "/result/volume",
			form:     url.Values{"value": {"1"}, "from_unit": {"liter"}, "to_unit": {"liter"}},
			expected: "Unknown conversion category: volume.",
		},
	}
	srv := newTestServer(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(srv, postForm(tt.path, tt.form))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expected)
		})
	}
}

func TestResultPage_PostOutOfRange(t *testing.T) {
	form := url.Values{"value": {"1e308"}, "from_unit": {"kilometer"}, "to_unit": {"meter"}}
	rec := do(newTestServer(nil), postForm("/result/length", form))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The converted value is too large to display.")
	assert.NotContains(t, rec.Body.String(), "Inf")
}

func TestResultPage_PostEscapesInput(t *testing.T) {
	form := url.Values{"value": {"1"}, "from_unit": {"<script>"}, "to_unit": {"meter"}}
	rec := do(newTestServer(nil), postForm("/result/length", form))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestResultPage_PostInternalError(t *testing.T) {
	srv := httpadapter.NewServer(":0", failingConverter{Service: newService()}, slog.Default())
	form := url.Values{"value": {"1"}, "from_unit": {"meter"}, "to_unit": {"meter"}}
	rec := do(srv, postForm("/result/length", form))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "boom")
}

// --- JSON API ---

func TestAPIConvert(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"string value", `{"value":"2","from_unit":"kilogram","to_unit":"gram"}`},
		{"number value", `{"value":2,"from_unit":"kilogram","to_unit":"gram"}`},
	}
	srv := newTestServer(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(srv, postJSON("/api/convert/weight", tt.body))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "2 kilogram = 2000 gram", body["result"])
			assert.Equal(t, "weight", body["category"])
			assert.Equal(t, "2000", body["formatted"])
			assert.InDelta(t, 2000.0, body["converted"], 1e-9)
		})
	}
}

func TestAPIConvert_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{"missing value", "/api/convert/length", `{"from_unit":"meter","to_unit":"meter"}`, http.StatusUnprocessableEntity, "empty_input"},
		{"null value", "/api/convert/length", `{"value":null,"from_unit":"meter","to_unit":"meter"}`, http.StatusUnprocessableEntity, "empty_input"},
		{"invalid number", "/api/convert/length", `{"value":"abc","from_unit":"meter","to_unit":"meter"}`, http.StatusUnprocessableEntity, "invalid_number"},
		{"boolean value", "/api/convert/length", `{"value":true,"from_unit":"meter","to_unit":"meter"}`, http.StatusUnprocessableEntity, "invalid_number"},
		{"unknown unit", "/api/convert/temperature", `{"value":1,"from_unit":"rankine","to_unit":"kelvin"}`, http.StatusUnprocessableEntity, "unknown_unit"},
		{"out of range", "/api/convert/length", `{"value":"1e308","from_unit":"kilometer","to_unit":"meter"}`, http.StatusUnprocessableEntity, "out_of_range"},
		{"hex value", "/api/convert/length", `{"value":"0x1p-2","from_unit":"meter","to_unit":"meter"}`, http.StatusUnprocessableEntity, "invalid_number"},
		{"unknown category", "/api/convert/volume", `{"value":1,"from_unit":"liter","to_unit":"liter"}`, http.StatusNotFound, "unknown_category"},
	}
	srv := newTestServer(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(srv, postJSON(tt.path, tt.body))

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body["kind"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAPIConvert_MalformedBody(t *testing.T) {
	rec := do(newTestServer(nil), postJSON("/api/convert/length", `{"value":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestAPIUnits(t *testing.T) {
	srv := newTestServer(nil)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/units/temperature", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"celsius", "fahrenheit", "kelvin"}, body["units"])

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/api/units/volume", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(newTestServer(nil), httptest.NewRequest(http.MethodDelete, "/result/length", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
