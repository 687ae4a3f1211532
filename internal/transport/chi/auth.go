package chi

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

const authRealm = `Bearer realm="eseries"`

// apiKeySet matches bearer tokens against configured keys in constant time.
// Keys are stored as SHA-256 digests so every comparison has the same length.
type apiKeySet [][sha256.Size]byte

func newAPIKeySet(keys []string) apiKeySet {
	set := make(apiKeySet, 0, len(keys))
	seen := make(map[[sha256.Size]byte]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		d := sha256.Sum256([]byte(k))
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		set = append(set, d)
	}
	return set
}

// match checks token against every key; it never returns early.
func (s apiKeySet) match(token string) bool {
	d := sha256.Sum256([]byte(token))
	found := 0
	for i := range s {
		found |= subtle.ConstantTimeCompare(d[:], s[i][:])
	}
	return found == 1
}

// bearerToken extracts the token from an Authorization header.
// The scheme name is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// BearerAuthMiddleware rejects requests without a valid API key.
// Paths in public (see PublicPaths) are served without one.
// If apiKeys holds no non-empty key, authentication is disabled.
func BearerAuthMiddleware(apiKeys []string, public ...string) func(http.Handler) http.Handler {
	keys := newAPIKeySet(apiKeys)
	open := make(map[string]struct{}, len(public))
	for _, p := range public {
		open[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := open[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				w.Header().Set("WWW-Authenticate", authRealm)
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				w.Header().Set("WWW-Authenticate", authRealm)
				writeError(w, http.StatusUnauthorized,
					codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}
			if token == "" || !keys.match(token) {
				w.Header().Set("WWW-Authenticate", authRealm+`, error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
