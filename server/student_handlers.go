package server

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/taskflow/assignments"
	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/rs/zerolog/log"
)

type studentDashboardContent struct {
	Summary  assignments.Summary
	Upcoming []assignments.AssignmentView
	Now      time.Time
}

type studentAssignmentsContent struct {
	Views []assignments.AssignmentView
	Now   time.Time
}

type studentAssignmentContent struct {
	View    assignments.AssignmentView
	Overdue bool
}

// StudentDashboardHandler shows status counts and what is still to do
func (s *Server) StudentDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := s.assignmentsFor(r).StudentAssignments(r.Context())
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		userName := ""
		me, err := s.accountFor(r).Me(r.Context())
		switch {
		case errs.Is(err, errs.ErrAuthorizationDenied):
			s.backendFailure(w, r, err)
			return
		case err != nil:
			log.Warn().Err(err).Msg("Student: current user lookup failed")
		default:
			userName = me.DisplayName()
		}

		upcoming := make([]assignments.AssignmentView, 0, len(views))
		for _, v := range views {
			if v.Status == assignments.StatusPending {
				upcoming = append(upcoming, v)
			}
		}
		sort.SliceStable(upcoming, func(i, j int) bool {
			return upcoming[i].DueDate.Before(upcoming[j].DueDate.Time)
		})

		s.render(w, r, http.StatusOK, pageStudentDashboard, pageData{
			Title:    "Student dashboard",
			UserName: userName,
			Content: studentDashboardContent{
				Summary:  assignments.Summarize(views),
				Upcoming: upcoming,
				Now:      s.now(),
			},
		})
	}
}

func (s *Server) StudentAssignmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := s.assignmentsFor(r).StudentAssignments(r.Context())
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		s.render(w, r, http.StatusOK, pageStudentAssignments, pageData{
			Title:   "Assignments",
			Content: studentAssignmentsContent{Views: views, Now: s.now()},
		})
	}
}

// StudentAssignmentHandler shows one assignment with the student's own
// submission, grade and feedback
func (s *Server) StudentAssignmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.renderError(w, r, http.StatusNotFound, "That assignment could not be found.")
			return
		}

		view, err := s.assignmentsFor(r).StudentAssignment(r.Context(), id)
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		s.render(w, r, http.StatusOK, pageStudentAssignment, pageData{
			Title: view.Title,
			Error: r.URL.Query().Get("error"),
			Content: studentAssignmentContent{
				View:    view,
				Overdue: view.Overdue(s.now()),
			},
		})
	}
}

func (s *Server) SubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.renderError(w, r, http.StatusNotFound, "That assignment could not be found.")
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		back := studentAssignmentPath(id)
		input := assignments.SubmissionInput{Content: strings.TrimSpace(r.PostFormValue("content"))}
		if err := s.validate.Struct(input); err != nil {
			redirectWithError(w, r, back, err.Error(), nil)
			return
		}

		_, err := s.assignmentsFor(r).Submit(r.Context(), id, input)
		if errs.Is(err, errs.ErrInvalidInput) {
			redirectWithError(w, r, back, backendMessage(err, "The submission was rejected by the server."), nil)
			return
		}
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		log.Info().Int("assignment", id).Msg("Student: work submitted")
		redirectSuccess(w, r, back)
	}
}

func studentAssignmentPath(id int) string {
	return strings.Replace(RouteStudentAssignment, "{id}", strconv.Itoa(id), 1)
}
