package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ghaggin/homesite/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()

	sm, err := NewSessionManager(&config.Config{
		Session: config.Session{Lifetime: config.Duration(time.Minute)},
	})
	require.Nil(t, err)

	return sm
}

func Test_requireAuth(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	sm := newTestSessionManager(t)

	req, err := http.NewRequest("GET", "/", nil)
	require.Nil(err)

	rr := httptest.NewRecorder()

	calledNext := false
	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calledNext = true
	})

	gate := RequireAuth(sm, NewAllowList("/login"), zap.NewNop())
	handler := sm.Wrap(gate(testHandler))

	handler.ServeHTTP(rr, req)
	assert.False(calledNext)
	assert.Equal(http.StatusSeeOther, rr.Code)
	assert.Equal("/login", rr.Result().Header.Get("Location"))
}

func Test_requireAuth_authenticated(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	sm := newTestSessionManager(t)

	r, err := http.NewRequest("GET", "/", nil)
	require.Nil(err)
	rr := httptest.NewRecorder()

	putAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Nil(sm.SetAuthenticated(r.Context(), "test"))
			next.ServeHTTP(w, r)
		})
	}

	calledNext := false
	nextHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calledNext = true
	})

	gate := RequireAuth(sm, NewAllowList("/login"), zap.NewNop())
	handler := sm.Wrap(putAuth(gate(nextHandler)))

	handler.ServeHTTP(rr, r)
	assert.True(calledNext)
	assert.Equal(http.StatusOK, rr.Code)
}

func Test_requireAuth_expired(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	sm := newTestSessionManager(t)

	r, err := http.NewRequest("GET", "/", nil)
	require.Nil(err)
	rr := httptest.NewRecorder()

	expireAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Nil(sm.SetAuthenticated(r.Context(), "test"))
			session, err := sm.Get(r.Context())
			require.Nil(err)
			session.AuthExpiration = time.Now().Add(-time.Minute)
			next.ServeHTTP(w, r)
		})
	}

	calledNext := false
	nextHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calledNext = true
	})

	gate := RequireAuth(sm, NewAllowList("/login"), zap.NewNop())
	handler := sm.Wrap(expireAuth(gate(nextHandler)))

	handler.ServeHTTP(rr, r)
	assert.False(calledNext)
	assert.Equal(http.StatusSeeOther, rr.Code)
}

func Test_requireAuth_allowList(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	sm := newTestSessionManager(t)

	r, err := http.NewRequest("GET", "/login", nil)
	require.Nil(err)
	rr := httptest.NewRecorder()

	calledNext := false
	nextHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calledNext = true
	})

	gate := RequireAuth(sm, NewAllowList("/login"), zap.NewNop())
	handler := sm.Wrap(gate(nextHandler))

	handler.ServeHTTP(rr, r)
	assert.True(calledNext)
	assert.Equal(http.StatusOK, rr.Code)
}

func Test_allowListMatch(t *testing.T) {
	assert := assert.New(t)

	allow := NewAllowList("/login", "/static/", ".css", ".js", "/favicon.ico")

	for path, want := range map[string]bool{
		"/login":              true,
		"/login/extra":        false,
		"/static/css/app.css": true,
		"/static/":            true,
		"/staticfile":         false,
		"/app.css":            true,
		"/js/app.js":          true,
		"/favicon.ico":        true,
		"/":                   false,
		"/projects/one":       false,
	} {
		assert.Equal(want, allow.Match(path), "path %v", path)
	}
}
