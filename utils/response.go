package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// APIError is the wire shape of every error response.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// WriteJSON serializes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// WriteError writes a single structured error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, APIError{Status: status, Message: message})
}
