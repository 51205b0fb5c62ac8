package handlers

import (
	"encoding/json"
	"net/http"
)

// accessDeniedMessage is the uniform body for authentication and
// authorization failures. The real cause is only ever logged.
const accessDeniedMessage = "Access Denied"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorsResponse struct {
	Errors []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

func writeValidationErrors(w http.ResponseWriter, messages []string) {
	writeJSON(w, http.StatusBadRequest, ValidationErrorsResponse{Errors: messages})
}
