package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/taskflow/gateway"
	"github.com/jrsteele09/taskflow/internal/config"
	"github.com/jrsteele09/taskflow/internal/validation"
	"github.com/jrsteele09/taskflow/routeguard"
	"github.com/jrsteele09/taskflow/session"
)

// SlotFactory hands out the token slot of the browser behind a request
type SlotFactory interface {
	For(w http.ResponseWriter, r *http.Request) session.TokenStore
}

type Server struct {
	env       string // DEV, TEST or PROD
	appName   string
	router    chi.Router
	routes    []string
	config    config.Config
	api       *gateway.Client
	slots     SlotFactory
	guard     routeguard.Guard
	validate  *validation.Validator
	metrics   *metrics
	pages     map[string]*template.Template
	now       func() time.Time
	roleClaim string
}

type Option func(*Server)

// WithClock overrides time.Now for session expiry and overdue flags
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(cfg config.Config, slots SlotFactory, opts ...Option) (*Server, error) {
	s := &Server{
		env:       cfg.GetEnv(),
		appName:   cfg.GetAppName(),
		router:    chi.NewRouter(),
		config:    cfg,
		slots:     slots,
		guard:     routeguard.New(RouteLogin, RouteTeacherDashboard, RouteStudentDashboard),
		validate:  validation.New(),
		metrics:   newMetrics(),
		now:       time.Now,
		roleClaim: cfg.GetRoleClaim(),
	}
	for _, opt := range opts {
		opt(s)
	}

	api, err := gateway.New(cfg, gateway.WithUnauthorizedHook(s.metrics.forcedLogout))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create backend gateway: %w", err)
	}
	s.api = api

	if s.pages, err = parsePages(); err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RegisterRouteHandler takes a "METHOD /path" pattern
func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		s.router.Handle(pattern, handler)
		return
	}
	s.router.Method(method, path, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.RegisterRouteHandler(pattern, http.HandlerFunc(handler))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}
