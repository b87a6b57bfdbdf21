package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
)

type ctxKey string

const ctxKeyCreateEntry ctxKey = "parsedCreateEntry"
const ctxKeyUpdateEntry ctxKey = "parsedUpdateEntry"

// parseCreateEntry decodes the POST /entries body and stores the request
// struct in the context for the handler. Unknown fields are ignored on
// purpose: that is how caller-supplied id/created_at/updated_at get
// stripped before validation. Field validation itself happens in the
// service, before any backend call.
func (s *Server) parseCreateEntry() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req createEntryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyCreateEntry, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseUpdateEntry decodes the PATCH body into a partial field map.
func (s *Server) parseUpdateEntry() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req updateEntryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyUpdateEntry, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
