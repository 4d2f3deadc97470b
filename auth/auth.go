// Package auth guards HTTP routes with a static bearer token.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Bearer wraps next so that requests must carry "Authorization: Bearer <token>".
// An empty token disables the check.
func Bearer(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	want := []byte(token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="dockyard"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetAuthHeader adds the bearer token to an outgoing request.
func SetAuthHeader(r *http.Request, token string) {
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}
