package errors

import (
	"encoding/json"
	"net/http"
)

// Messages reused across handlers. The upstream error body is logged by the
// caller; only these generic strings reach clients.
const (
	MsgMissingAPIKey = "GOOGLE_API_KEY not configured"
)

type jsonError struct {
	Error string `json:"error"`
}

// WriteJSONError writes {"error": message} with the given status code.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message})
}

// WriteConfigError reports a missing upstream credential. Always a 500 so
// callers can tell deployment problems apart from bad requests.
func WriteConfigError(w http.ResponseWriter) {
	WriteJSONError(w, http.StatusInternalServerError, MsgMissingAPIKey)
}
