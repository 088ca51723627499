package gate

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/session"
)

// Edge wraps a whole handler and verifies requests whose path falls under
// one of prefixes before any routing happens. Rejections use the same JSON
// bodies as API. On success the identity is stored in the request context,
// where API and Page pick it up without verifying again.
func Edge(v session.Verifier, prefixes []string, logger logging.Logger) func(http.Handler) http.Handler {
	cleaned := normalizePrefixes(prefixes)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || !matchPrefix(cleaned, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			res := v.Verify(r)
			if !res.OK() {
				logFailure(r.Context(), logger, r, res)
				status, msg := Rejection(res)
				writeError(w, status, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), res.Identity)))
		})
	}
}

// MatchPrefix reports whether path equals a prefix or lies below it.
// "/api/pokemon" matches "/api/pokemon/pikachu" but not "/api/pokemonx".
func MatchPrefix(prefixes []string, path string) bool {
	return matchPrefix(normalizePrefixes(prefixes), path)
}

func matchPrefix(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if p == "/" || path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func normalizePrefixes(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		if len(p) > 1 {
			p = strings.TrimRight(p, "/")
			if p == "" {
				p = "/"
			}
		}
		out = append(out, p)
	}
	return out
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
