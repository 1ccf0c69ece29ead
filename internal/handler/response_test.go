package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/freeeve/hexhaven/api/internal/auth"
	"github.com/freeeve/hexhaven/api/internal/service"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	data := map[string]string{"name": "test", "value": "42"}
	writeJSON(rec, http.StatusOK, data)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", ct)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["name"] != "test" || result["value"] != "42" {
		t.Errorf("unexpected body: %v", result)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "bad input")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var result map[string]string
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result["error"] != "bad input" {
		t.Errorf("expected error 'bad input', got %s", result["error"])
	}
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"hello"}`))
	var v struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(httptest.NewRecorder(), req, &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Name != "hello" {
		t.Errorf("expected 'hello', got %s", v.Name)
	}

	big := `{"name":"` + strings.Repeat("x", maxBodySize) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	if err := decodeJSON(httptest.NewRecorder(), req, &v); err == nil {
		t.Error("expected oversized body to fail")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrGameNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrPlayerNotFound), http.StatusNotFound},
		{&catan.ActionError{Kind: catan.KindNotFound, Message: "no offer"}, http.StatusNotFound},
		{service.ErrGameExpired, http.StatusGone},
		{service.ErrNotHost, http.StatusForbidden},
		{service.ErrTooManyGames, http.StatusServiceUnavailable},
		{service.ErrInvalidName, http.StatusBadRequest},
		{auth.ErrNotSeated, http.StatusUnauthorized},
		{catan.ErrNotYourTurn, http.StatusConflict},
		{catan.ErrAlreadyStarted, http.StatusConflict},
		{catan.ErrGameFull, http.StatusUnprocessableEntity},
		{&catan.ActionError{Kind: catan.KindResources, Message: "broke"}, http.StatusUnprocessableEntity},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteServiceErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New("pq: connection refused"))
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "pq") {
		t.Errorf("internal error leaked: %d %s", rec.Code, rec.Body.String())
	}
}

func TestActionFailureShape(t *testing.T) {
	body, _ := json.Marshal(actionFailure(catan.ErrNotYourTurn))
	var got map[string]any
	json.Unmarshal(body, &got)
	if got["success"] != false || got["kind"] != "turn" || got["error"] != "not your turn" {
		t.Errorf("failure body = %s", body)
	}
	if _, ok := got["result"]; ok {
		t.Error("failure should omit result")
	}
}
