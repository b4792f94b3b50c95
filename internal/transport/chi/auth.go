package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// ExportKeyMiddleware guards administrative routes with a shared secret.
// The key is read from the "key" query parameter or a Bearer header.
// With no keys configured the guarded routes answer 404.
func ExportKeyMiddleware(keys []string) func(http.Handler) http.Handler {
	valid := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			valid = append(valid, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(valid) == 0 {
				writeError(w, http.StatusNotFound, "not found")
				return
			}

			key := r.URL.Query().Get("key")
			if key == "" {
				const bearerPrefix = "Bearer "
				if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
					key = auth[len(bearerPrefix):]
				}
			}
			if key == "" {
				writeError(w, http.StatusUnauthorized, "missing export key")
				return
			}
			if !matchesAny(valid, []byte(key)) {
				writeError(w, http.StatusUnauthorized, "invalid export key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func matchesAny(valid [][]byte, key []byte) bool {
	ok := 0
	for _, v := range valid {
		ok |= subtle.ConstantTimeCompare(v, key)
	}
	return ok == 1
}
