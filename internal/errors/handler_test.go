package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofiaalage/product-sales-forecasting/internal/infrastructure"
)

func testErrorHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblem(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"missing file", ErrMissingFile, http.StatusBadRequest, TypeValidation},
		{"unsupported file", ErrUnsupportedFile, http.StatusBadRequest, TypeValidation},
		{"file too large", ErrFileTooLarge, http.StatusRequestEntityTooLarge, TypePayloadTooLarge},
		{"invalid workbook", WorkbookError(errors.New("sheet not found")), http.StatusUnprocessableEntity, TypeInvalidWorkbook},
		{"analysis failed", AnalysisError(errors.New("bad window")), http.StatusInternalServerError, TypeAnalysisFailed},
		{"deadline exceeded", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"not found string", errors.New("report not found"), http.StatusNotFound, TypeNotFound},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError, TypeInternal},
		{"wrapped api error", fmt.Errorf("handling upload: %w", ErrMissingFile), http.StatusBadRequest, TypeValidation},
	}

	h := testErrorHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, req)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/analysis", problem.Instance)
		})
	}
}

func TestErrorToProblem_HidesInternalDetail(t *testing.T) {
	h := testErrorHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	problem := h.ErrorToProblem(errors.New("connection string leaked"), req)
	assert.Equal(t, "An unexpected error occurred", problem.Detail)

	verbose := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), true)
	problem = verbose.ErrorToProblem(errors.New("connection string leaked"), req)
	assert.Equal(t, "connection string leaked", problem.Detail)
}

func TestHandleError_RendersProblem(t *testing.T) {
	h := testErrorHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)
	req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-123"))
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, ErrMissingFile)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeValidation, body["type"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, "No workbook file was uploaded", body["detail"])
	assert.Equal(t, "trace-123", body["trace_id"])
}

func TestHandleError_NilError(t *testing.T) {
	h := testErrorHandler()
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestProblemDetails_MarshalFlattensExtensions(t *testing.T) {
	p := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "field out of range", "/api/analysis")
	p.WithExtension("details", ValidationError{Field: "window_start_month", Message: "value out of range"})

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, TypeValidation, m["type"])
	details, ok := m["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "window_start_month", details["field"])
}

func TestAPIError(t *testing.T) {
	err := ErrValidation("shelf_life_months", "must be an integer")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)
	assert.Equal(t, "Request validation failed", err.Error())

	ve, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "shelf_life_months", ve.Field)
}
