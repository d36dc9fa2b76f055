package site

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ghaggin/homesite/internal/auth"
	"github.com/ghaggin/homesite/internal/content"
	"github.com/ghaggin/homesite/internal/middleware"
	"github.com/ghaggin/homesite/internal/template"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// One message for every credential failure so unknown-user and
// wrong-password are indistinguishable.
const loginFailedMsg = "invalid username or password"

type handlers struct {
	log      *zap.Logger
	secret   string
	sessions *middleware.SessionManager
	auth     *auth.Authenticator
	content  *content.Store
	renderer *template.Renderer
	started  time.Time
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	err = h.renderer.Render(w, http.StatusOK, "home.html", &template.Data{
		PageTitle: "Home",
		UID:       session.UID,
		Pages:     h.content.List(),
	})
	if err != nil {
		h.renderError(w, err)
	}
}

func (h *handlers) project(w http.ResponseWriter, r *http.Request) {
	page := h.content.Get(chi.URLParam(r, "slug"))
	if page == nil {
		http.NotFound(w, r)
		return
	}

	// htmx swaps just the panel, direct navigation gets the full page
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page.HTML)
		return
	}

	session, err := h.sessions.Get(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	err = h.renderer.Render(w, http.StatusOK, "project.html", &template.Data{
		PageTitle: page.Title,
		UID:       session.UID,
		Content:   page.HTML,
	})
	if err != nil {
		h.renderError(w, err)
	}
}

func (h *handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, http.StatusOK, "")
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, http.StatusBadRequest, "please try again")
		return
	}

	if !validCSRFToken(h.secret, r.PostFormValue("csrf")) {
		h.renderLogin(w, http.StatusBadRequest, "please try again")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		h.renderLogin(w, http.StatusUnauthorized, loginFailedMsg)
		return
	}

	ok, err := h.auth.ValidateLogin(r.Context(), username, password)
	if err != nil {
		h.log.Error("validating login", zap.Error(err))
		h.renderLogin(w, http.StatusUnauthorized, loginFailedMsg)
		return
	}
	if !ok {
		h.renderLogin(w, http.StatusUnauthorized, loginFailedMsg)
		return
	}

	err = h.sessions.SetAuthenticated(r.Context(), username)
	if err != nil {
		h.log.Error("setting session authenticated", zap.Error(err))
		h.renderLogin(w, http.StatusUnauthorized, loginFailedMsg)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.ClearAuthenticated(r.Context())
	if err != nil {
		// still redirect, logout is best effort and idempotent
		h.log.Warn("clearing session", zap.Error(err))
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// live reports the server start time so the dev live-reload script
// can detect restarts.
func (h *handlers) live(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "%d", h.started.Unix())
}

func (h *handlers) renderLogin(w http.ResponseWriter, status int, errMsg string) {
	csrf, err := newCSRFToken(h.secret)
	if err != nil {
		h.renderError(w, err)
		return
	}

	err = h.renderer.Render(w, status, "login.html", &template.Data{
		PageTitle: "Login",
		Error:     errMsg,
		CSRF:      csrf,
	})
	if err != nil {
		h.renderError(w, err)
	}
}

func (h *handlers) renderError(w http.ResponseWriter, err error) {
	h.log.Error("rendering page", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
