package server

import (
	"net/http"
	"net/url"
	"strings"

	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/jrsteele09/taskflow/session"
	"github.com/rs/zerolog/log"
)

// LoginPageData is the login view's model
type LoginPageData struct {
	Username string // Preserve username on error
}

// LoginPageUIHandler displays the login view (GET /)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		notice := noticeMessages[query.Get("notice")]
		if rs := requestSessionFrom(r); rs != nil && rs.session.Lapsed && notice == "" {
			notice = noticeMessages[noticeExpired]
		}

		s.render(w, r, http.StatusOK, pageLogin, pageData{
			Title:   "Sign in",
			Notice:  notice,
			Error:   query.Get("error"),
			Content: LoginPageData{Username: query.Get("username")},
		})
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		creds := session.Credentials{
			Username: strings.TrimSpace(r.PostFormValue("username")),
			Password: r.PostFormValue("password"),
		}
		keep := url.Values{"username": {creds.Username}}

		if err := s.validate.Struct(creds); err != nil {
			s.metrics.login("invalid_input")
			redirectWithError(w, r, RouteLogin, "Username and password are required", keep)
			return
		}

		role, err := s.sessionFor(w, r).Login(r.Context(), creds)
		if err != nil {
			result, message := loginFailure(err)
			s.metrics.login(result)
			log.Info().Err(err).Str("result", result).Msg("Login: failed")
			redirectWithError(w, r, RouteLogin, message, keep)
			return
		}

		s.metrics.login("success")
		redirectSuccess(w, r, s.guard.Home(role))
	}
}

// LogoutHandler empties the token slot; logging out twice is fine
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessionFor(w, r).Logout(r.Context()); err != nil {
			log.Err(err).Msg("Logout: failed to clear session")
		}
		redirectSuccess(w, r, withNotice(RouteLogin, noticeSignedOut))
	}
}

// loginFailure maps a Login error to a metric label and a message for the form
func loginFailure(err error) (string, string) {
	switch {
	case errs.Is(err, errs.ErrTokenExpired):
		return "expired_token", "The server issued a token that has already expired. Please try again."
	case errs.Is(err, errs.ErrInvalidToken):
		return "invalid_token", "The server returned a token this application cannot read."
	case errs.Is(err, errs.ErrBackendUnavailable):
		return "unavailable", "The sign-in service cannot be reached right now. Please try again."
	default:
		return "rejected", "Invalid username or password"
	}
}
