package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/taskflow/routeguard"
	"github.com/jrsteele09/taskflow/session"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyRequestSession stores the session resolved for the request
const ContextKeyRequestSession ContextKey = "request_session"

// requestSession is what a guarded handler gets to work with
type requestSession struct {
	manager *session.Manager
	session session.Session
}

// sessionFor builds the session manager over the browser's token slot
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Manager {
	return session.NewManager(
		s.slots.For(w, r),
		s.api,
		session.WithRoleClaim(s.roleClaim),
		session.WithClock(s.now),
	)
}

// RequireView re-reads the session on every request and lets the guard decide
// whether view is rendered.
func (s *Server) RequireView(view routeguard.View) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			manager := s.sessionFor(w, r)
			current, err := manager.Current(r.Context())
			if err != nil {
				log.Err(err).Str("path", r.URL.Path).Msg("Guard: session read failed, treating as signed out")
			}

			decision := s.guard.Evaluate(current, view)
			switch decision.State {
			case routeguard.Redirecting:
				target := decision.Target
				if target == s.guard.LoginPath && current.Lapsed {
					target = withNotice(target, noticeExpired)
				}
				s.metrics.guardRedirect(redirectReason(current, view))
				redirectSuccess(w, r, target)
				return
			case routeguard.AnonymousAllowed, routeguard.Authorized:
				ctx := context.WithValue(r.Context(), ContextKeyRequestSession, &requestSession{manager: manager, session: current})
				next(w, r.WithContext(ctx))
			}
		}
	}
}

func requestSessionFrom(r *http.Request) *requestSession {
	rs, _ := r.Context().Value(ContextKeyRequestSession).(*requestSession)
	return rs
}

func redirectReason(current session.Session, view routeguard.View) string {
	switch {
	case !current.IsValid() && current.Lapsed:
		return "expired"
	case !current.IsValid():
		return "unauthenticated"
	case view.Area == routeguard.AreaLogin:
		return "signed_in"
	default:
		return "cross_role"
	}
}

func withNotice(path, notice string) string {
	return path + "?notice=" + url.QueryEscape(notice)
}
