package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/taskflow/account"
	"github.com/jrsteele09/taskflow/assignments"
)

// dateTimeLocalLayout is what an <input type="datetime-local"> submits
const dateTimeLocalLayout = "2006-01-02T15:04"

const submissionsPageSize = 20

// assignmentsFor binds the domain service to the request's session
func (s *Server) assignmentsFor(r *http.Request) *assignments.Service {
	return assignments.NewService(s.api.Bind(requestSessionFrom(r).manager))
}

func (s *Server) accountFor(r *http.Request) *account.Service {
	return account.NewService(s.api.Bind(requestSessionFrom(r).manager))
}

// pathID reads the {id} URL parameter
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
