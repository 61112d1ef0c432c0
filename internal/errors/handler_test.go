package errors

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarcli/internal/engine"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblem(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/process", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "missing columns maps to 400",
			err:        &engine.MissingColumnsError{Fields: []string{"No. Pesanan"}},
			wantStatus: http.StatusBadRequest,
			wantType:   TypeMissingColumns,
		},
		{
			name:       "empty batch maps to 422",
			err:        engine.ErrEmptyBatch,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeEmptyBatch,
		},
		{
			name:       "all rows cancelled maps to 422",
			err:        engine.ErrNoActiveRows,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeNoActiveRows,
		},
		{
			name:       "context deadline maps to 504",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "api error keeps its status",
			err:        ErrRateLimitExceeded,
			wantStatus: http.StatusTooManyRequests,
			wantType:   TypeRateLimit,
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, req)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/orders/process", problem.Instance)
		})
	}
}

func TestErrorToProblemKeepsPipelineDetail(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/process", nil)

	problem := h.ErrorToProblem(engine.ErrNoActiveRows, req)
	assert.Equal(t, "tidak ada data setelah filter batal", problem.Detail)

	problem = h.ErrorToProblem(&engine.MissingColumnsError{Fields: []string{"Provinsi", "Jumlah"}}, req)
	assert.Equal(t, "kolom tidak ditemukan: Provinsi, Jumlah", problem.Detail)
	assert.Equal(t, []string{"Provinsi", "Jumlah"}, problem.Extensions["columns"])
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/process", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, engine.ErrEmptyBatch)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeEmptyBatch, body["type"])
	assert.Equal(t, "semua file kosong atau tidak valid", body["detail"])
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "bad input", "/api/brands").
		WithExtension("error_code", "VALIDATION_FAILED")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
}

func TestNotFoundHandler(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePanic(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	rec := httptest.NewRecorder()

	h.HandlePanic(rec, req, "boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
