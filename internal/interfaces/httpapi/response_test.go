package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"github.com/riskibarqy/lol-match-history/internal/usecase"
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

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, status: http.StatusBadRequest, code: "INVALID_ARGUMENT"},
		{name: "bad token", err: usecase.ErrUnauthorized, status: http.StatusUnauthorized, code: "UNAUTHENTICATED"},
		{name: "lock backend down", err: fmt.Errorf("%w: acquire", usecase.ErrDependencyUnavailable), status: http.StatusServiceUnavailable, code: "UNAVAILABLE"},
		{name: "upstream 404", err: usecase.ErrUpstreamNotFound, status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "retry budget spent", err: usecase.ErrUpstreamThrottled, status: http.StatusTooManyRequests, code: "RESOURCE_EXHAUSTED"},
		{name: "upstream 5xx", err: usecase.ErrUpstreamUnavailable, status: http.StatusBadGateway, code: "UNAVAILABLE"},
		{name: "invalid payload", err: fmt.Errorf("decode: %w", &schema.SchemaValidationError{Path: "info.gameId"}), status: http.StatusUnprocessableEntity, code: "FAILED_PRECONDITION"},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, code: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.status || got.Status != tt.code {
				t.Fatalf("mapError(%v) = %d %s, want %d %s", tt.err, got.HTTPStatus, got.Status, tt.status, tt.code)
			}
		})
	}
}
