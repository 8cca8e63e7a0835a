package server

import (
	"bytes"
	"net/http"

	"github.com/jrsteele09/taskflow/gateway"
	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/jrsteele09/taskflow/internal/validation"
	"github.com/jrsteele09/taskflow/session"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

var noticeMessages = map[string]string{
	noticeExpired:   "Your session has expired. Please sign in again.",
	noticeSignedOut: "You have been signed out.",
	noticeDenied:    "Your session is no longer accepted by the server. Please sign in again.",
}

// pageData is what the layout expects; Content is the page's own model
type pageData struct {
	AppName     string
	Title       string
	Role        session.Role
	UserName    string
	Notice      string
	Error       string
	FieldErrors validation.FieldErrors
	Content     any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	tmpl, ok := s.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("Render: unknown page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	data.AppName = s.appName
	if rs := requestSessionFrom(r); rs != nil && rs.session.IsValid() {
		data.Role = rs.session.Role
		if data.UserName == "" {
			data.UserName = rs.session.Name
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Err(err).Str("page", page).Msg("Render: template failed")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, pageError, pageData{
		Title: http.StatusText(status),
		Error: message,
	})
}

// backendFailure answers a request whose backend call failed. A 401 has
// already cleared the session in the gateway; the browser is sent to login.
func (s *Server) backendFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errs.Is(err, errs.ErrAuthorizationDenied):
		s.metrics.backendError("unauthorized")
		redirectSuccess(w, r, withNotice(RouteLogin, noticeDenied))
	case errs.Is(err, errs.ErrNotFound):
		s.metrics.backendError("not_found")
		s.renderError(w, r, http.StatusNotFound, "That item could not be found.")
	case errs.Is(err, errs.ErrBackendUnavailable):
		s.metrics.backendError("unavailable")
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Server: backend unavailable")
		s.renderError(w, r, http.StatusBadGateway, "The assignment service cannot be reached right now. Please try again.")
	default:
		s.metrics.backendError("other")
		log.Err(err).Str("path", r.URL.Path).Msg("Server: backend call failed")
		s.renderError(w, r, http.StatusBadGateway, "Something went wrong talking to the assignment service. Please try again.")
	}
}

// backendMessage returns the backend's own explanation of a rejected request
func backendMessage(err error, fallback string) string {
	var statusErr *gateway.StatusError
	if errs.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return fallback
}
