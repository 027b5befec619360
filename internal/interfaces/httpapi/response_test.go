package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/gameswap/gameswap/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_Taxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantHTTP   int
		wantReason string
		wantStatus string
	}{
		{name: "division mismatch", err: usecase.ErrDivisionMismatch, wantHTTP: 400, wantReason: "divisionMismatch", wantStatus: "INVALID_ARGUMENT"},
		{name: "invalid state", err: usecase.ErrInvalidState, wantHTTP: 400, wantReason: "invalidState", wantStatus: "FAILED_PRECONDITION"},
		{name: "double booking", err: usecase.ErrDoubleBooking, wantHTTP: 400, wantReason: "doubleBooking", wantStatus: "FAILED_PRECONDITION"},
		{name: "invalid input", err: usecase.ErrInvalidInput, wantHTTP: 400, wantReason: "invalidInput", wantStatus: "INVALID_ARGUMENT"},
		{name: "unauthenticated", err: usecase.ErrUnauthenticated, wantHTTP: 401, wantReason: "unauthenticated", wantStatus: "UNAUTHENTICATED"},
		{name: "forbidden", err: usecase.ErrForbidden, wantHTTP: 403, wantReason: "forbidden", wantStatus: "PERMISSION_DENIED"},
		{name: "not found", err: usecase.ErrNotFound, wantHTTP: 404, wantReason: "notFound", wantStatus: "NOT_FOUND"},
		{name: "conflict", err: usecase.ErrConflict, wantHTTP: 409, wantReason: "conflict", wantStatus: "ABORTED"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantHTTP: 503, wantReason: "dependencyUnavailable", wantStatus: "UNAVAILABLE"},
		{name: "unknown error", err: errors.New("boom"), wantHTTP: 500, wantReason: "internalError", wantStatus: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(context.Background(), fmt.Errorf("wrapped: %w", tt.err))
			if mapped.HTTPStatus != tt.wantHTTP {
				t.Fatalf("expected status %d, got %d", tt.wantHTTP, mapped.HTTPStatus)
			}
			if mapped.Reason != tt.wantReason {
				t.Fatalf("expected reason %q, got %q", tt.wantReason, mapped.Reason)
			}
			if mapped.Status != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, mapped.Status)
			}
		})
	}
}
