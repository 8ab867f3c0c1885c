package compute

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"calculator-api/internal/observability"
	"calculator-api/internal/testutil"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestHandler(t *testing.T) (*Handler, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	require.NoError(t, InitMetrics())

	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 8, 0, 1, 250_000_000, time.UTC))
	return NewHandler(NewService(nil), clock), logs
}

func postCalculate(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader([]byte(body)))
	return testutil.ExecuteRequest(r, http.HandlerFunc(h.Calculate))
}

func TestHello(t *testing.T) {
	h, _ := newTestHandler(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/hello", nil), http.HandlerFunc(h.Hello))
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp HelloResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	assert.Equal(t, "Hello from API!", resp.Message)
}

func TestStatus(t *testing.T) {
	h, _ := newTestHandler(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/status", nil), http.HandlerFunc(h.Status))
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp StatusResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "2026-10-14T08:00:01.250Z", resp.Timestamp)
}

func TestCalculate_Success(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"operation":"factorial","number":0}`, `{"result":1}`},
		{`{"operation":"factorial","number":25}`, `{"result":15511210043330985984000000}`},
		{`{"operation":"fibonacci","number":1}`, `{"result":1}`},
		{`{"operation":"nthPrime","number":2}`, `{"result":3}`},
		{`{"operation":"prime","number":6}`, `{"result":13}`},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			h, _ := newTestHandler(t)

			w := postCalculate(t, h, tt.body)
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestCalculate_LargeResultIsExactInteger(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postCalculate(t, h, `{"operation":"factorial","number":1000}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	dec := json.NewDecoder(w.Body)
	dec.UseNumber()
	var resp map[string]json.Number
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, Factorial(1000).String(), resp["result"].String())
}

func TestCalculate_ValidationErrors(t *testing.T) {
	h, logs := newTestHandler(t)

	w := postCalculate(t, h, `{"operation":"factorial","number":1001}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	var resp ValidationResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "number", resp.Errors[0].Path)
	assert.Equal(t, "Number must be an integer between 0 and 1000", resp.Errors[0].Msg)

	entries := logs.FilterMessage("invalid compute request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "factorial", entries[0].ContextMap()["operation"])
}

func TestCalculate_ValidationErrorsForBadBody(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postCalculate(t, h, `not json`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"path":"body"`))
}

func TestCalculate_RejectsOversizedBody(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"operation":"factorial","number":5,"pad":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	w := postCalculate(t, h, body)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	var resp ValidationResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "body", resp.Errors[0].Path)
}

func TestCalculate_NthPrimeZero(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postCalculate(t, h, `{"operation":"nthPrime","number":0}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	var resp ValidationResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Number must be at least 1 for nthPrime", resp.Errors[0].Msg)
}

func TestWriteFailure_ComputationError(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
	_, span := tracer.Start(r.Context(), "test")
	h.writeFailure(r.Context(), w, span, observability.Logger, "factorial", &ComputationError{Operation: OpFactorial, Err: errStub("boom")})
	span.End()

	testutil.CheckResponseCode(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, w.Body, &body)
	assert.Equal(t, "Calculation error", body["error"])
	assert.Equal(t, "boom", body["message"])
}

type errStub string

func (e errStub) Error() string { return string(e) }
