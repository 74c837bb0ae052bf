package http

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	maxRequestBodySize = 1 << 20 // 1MB
)

// Response is the envelope every endpoint answers with. Body is omitted, not
// null, when there is nothing to return.
type Response[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Body    *T     `json:"body,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("failed to encode response")
	}
}

func respondBody[T any](w http.ResponseWriter, status int, message string, body T) {
	respondJSON(w, status, Response[T]{
		Status:  statusSuccess,
		Message: message,
		Body:    &body,
	})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	envelope := statusSuccess
	if status >= http.StatusBadRequest {
		envelope = statusError
	}

	respondJSON(w, status, Response[struct{}]{
		Status:  envelope,
		Message: message,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	return true
}
