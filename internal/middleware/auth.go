package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const loginPath = "/login"

// AllowList holds the path patterns exempt from the auth gate.
// Patterns ending in "/" match by prefix, patterns starting with "."
// match by file extension, everything else matches exactly. Built at
// startup, immutable after.
type AllowList struct {
	patterns []string
}

func NewAllowList(patterns ...string) *AllowList {
	return &AllowList{patterns: patterns}
}

func (a *AllowList) Match(path string) bool {
	for _, p := range a.patterns {
		switch {
		case strings.HasSuffix(p, "/"):
			if strings.HasPrefix(path, p) {
				return true
			}
		case strings.HasPrefix(p, "."):
			if strings.HasSuffix(path, p) {
				return true
			}
		default:
			if path == p {
				return true
			}
		}
	}

	return false
}

// RequireAuth gates every request behind the session check. Paths on
// the allow-list pass unconditionally. Anything else needs a live
// authenticated session or the request is redirected to the login
// page before the handler runs. A session store error counts as
// unauthenticated.
func RequireAuth(sm *SessionManager, allow *AllowList, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allow.Match(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sm.Get(r.Context())
			if err != nil || !session.Authenticated() {
				log.Debug("unauthenticated request", zap.String("path", r.URL.Path))
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
