package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// accessTokenParam lets the browser client pass its key in the page URL
// (RFC 6750 section 2.3), since it cannot set headers on navigation.
const accessTokenParam = "access_token"

// APIKeyAuth guards the routes it wraps. A key is read from
// "Authorization: Bearer <key>" or the access_token query parameter.
// With no non-empty keys the middleware is a pass-through.
func APIKeyAuth(apiKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, msg := credential(r)
			if msg != "" {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, msg)
				return
			}
			if !knownKey(keys, token) {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// credential extracts the presented key. A non-empty msg describes why
// none could be read.
func credential(r *http.Request) (token, msg string) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, rest, ok := strings.Cut(auth, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || rest == "" {
			return "", "authorization header must use Bearer scheme"
		}
		return rest, ""
	}
	if t := r.URL.Query().Get(accessTokenParam); t != "" {
		return t, ""
	}
	return "", "missing authorization header"
}

func knownKey(keys [][]byte, token string) bool {
	t := []byte(token)
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, t)
	}
	return found == 1
}
