package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d", status, rr.Code)
	}
	if ct := rr.Result().Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected content type application/json, got %q", ct)
	}

	var response ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Error != message {
		t.Fatalf("expected error %q, got %q", message, response.Error)
	}
}

func assertMessageResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d", status, rr.Code)
	}

	var response MessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Message != message {
		t.Fatalf("expected message %q, got %q", message, response.Message)
	}
}

func assertValidationErrors(t *testing.T, rr *httptest.ResponseRecorder, messages ...string) {
	t.Helper()
	if rr.Code != 400 {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var response ValidationErrorsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(response.Errors) != len(messages) {
		t.Fatalf("expected %d error messages, got %d: %v", len(messages), len(response.Errors), response.Errors)
	}
	for i, want := range messages {
		if response.Errors[i] != want {
			t.Errorf("error %d: expected %q, got %q", i, want, response.Errors[i])
		}
	}
}
