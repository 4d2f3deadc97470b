// Package api holds helpers shared by the JSON handlers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/dockyard/core/yard"
)

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes the request body into v, replying 400 on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// Error maps yard errors onto HTTP status codes.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, yard.ErrUnknownDock):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, yard.ErrUnknownStatus), errors.Is(err, yard.ErrUnknownPool):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Middleware wraps a handler, typically to guard a mutating route.
type Middleware func(http.Handler) http.Handler

// Chain returns m, or a pass-through when m is nil.
func Chain(m Middleware) Middleware {
	if m == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return m
}
