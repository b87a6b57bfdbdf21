package httpapi

import "net/http"

// errorResponse is the standard error payload for the API. Messages never
// include connection strings or other internals.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusBadRequest, msg, "validation_error")
}

func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "Entry not found", "not_found")
}

func conflict(w http.ResponseWriter, msg, code string) {
	writeErr(w, http.StatusConflict, msg, code)
}

func internalError(w http.ResponseWriter) {
	writeErr(w, http.StatusInternalServerError, "internal error", "internal")
}
