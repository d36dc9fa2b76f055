package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ghaggin/homesite/internal/auth"
	"github.com/ghaggin/homesite/internal/config"
	"github.com/ghaggin/homesite/internal/content"
	"github.com/ghaggin/homesite/internal/middleware"
	"github.com/ghaggin/homesite/internal/template"
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var errMissingSecret = errors.New(config.EnvSecret + " is not set")

type Site struct {
	log    *zap.Logger
	server *http.Server
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Config   *config.Config
	Sessions *middleware.SessionManager
	Auth     *auth.Authenticator
	Content  *content.Store
	Renderer *template.Renderer
}

func New(p Params) (*Site, error) {
	if p.Config.Secret == "" {
		return nil, errMissingSecret
	}

	h := &handlers{
		log:      p.Log,
		secret:   p.Config.Secret,
		sessions: p.Sessions,
		auth:     p.Auth,
		content:  p.Content,
		renderer: p.Renderer,
		started:  time.Now(),
	}

	root := chi.NewRouter()
	root.Use(middleware.RequestLogger(p.Log))
	root.Use(p.Sessions.Wrap)
	root.Use(middleware.RequireAuth(
		p.Sessions,
		middleware.NewAllowList(p.Config.Server.PublicPaths...),
		p.Log,
	))

	root.Get("/", h.home)
	root.Get("/projects/{slug}", h.project)
	root.Get("/login", h.loginForm)
	root.Post("/login", h.login)
	root.Get("/logout", h.logout)
	root.Get("/live", h.live)
	root.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.Dir(p.Config.Server.StaticDir))))

	return &Site{
		log: p.Log,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", p.Config.Server.Port),
			Handler: root,
		},
	}, nil
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, s *Site) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Site) Start(_ context.Context) error {
	s.log.Info("starting server", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error running server", zap.Error(err))
		}
	}()
	return nil
}
