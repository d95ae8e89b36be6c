package middlewarex

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"dareboard/internal/apiutil"
)

// BearerAuth guards routes with a shared token. An empty token disables the
// check. The caller's X-User-ID header, if any, is put on the context.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" {
				auth := r.Header.Get("Authorization")
				if !strings.HasPrefix(auth, "Bearer ") {
					writeAuthError(w, "missing bearer")
					return
				}
				key := strings.TrimPrefix(auth, "Bearer ")
				if subtle.ConstantTimeCompare([]byte(key), []byte(token)) != 1 {
					writeAuthError(w, "invalid token")
					return
				}
			}

			ctx := r.Context()
			if id := strings.TrimSpace(r.Header.Get("X-User-ID")); id != "" {
				ctx = WithViewerID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"code":  string(apiutil.ErrAuthenticationFailed),
	})
}
