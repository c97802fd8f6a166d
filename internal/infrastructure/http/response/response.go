// Package response holds the JSON reply helpers shared by the HTTP
// handlers.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes data as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes err as a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, err error) {
	JSON(w, status, errorBody{
		Error:   http.StatusText(status),
		Message: err.Error(),
	})
}
