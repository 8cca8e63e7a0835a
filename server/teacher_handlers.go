package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/taskflow/assignments"
	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/jrsteele09/taskflow/internal/export"
	"github.com/jrsteele09/taskflow/internal/validation"
	"github.com/rs/zerolog/log"
)

type teacherAssignmentRow struct {
	assignments.Assignment
	Overdue bool
}

type teacherDashboardContent struct {
	Rows []teacherAssignmentRow
}

type assignmentFormContent struct {
	ID          int // zero for a new assignment
	Title       string
	Description string
	DueDate     string // datetime-local value
	Action      string
}

type submissionsContent struct {
	Assignment  assignments.Assignment
	Submissions []assignments.Submission
	Pagination  assignments.Pagination
	PrevPage    int
	NextPage    int
}

// TeacherDashboardHandler lists the teacher's assignments, newest first
func (s *Server) TeacherDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.assignmentsFor(r).TeacherAssignments(r.Context())
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		now := s.now()
		sorted := assignments.SortByCreatedDesc(list)
		rows := make([]teacherAssignmentRow, 0, len(sorted))
		for _, a := range sorted {
			rows = append(rows, teacherAssignmentRow{Assignment: a, Overdue: a.Overdue(now)})
		}

		s.render(w, r, http.StatusOK, pageTeacherDashboard, pageData{
			Title:   "Teacher dashboard",
			Error:   r.URL.Query().Get("error"),
			Content: teacherDashboardContent{Rows: rows},
		})
	}
}

// AssignmentFormHandler shows the create form, or the edit form when the
// route carries an id
func (s *Server) AssignmentFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := assignmentFormContent{Action: RouteTeacherNewAssignment}

		if id, ok := pathID(r); ok {
			a, err := s.assignmentsFor(r).TeacherAssignment(r.Context(), id)
			if err != nil {
				s.backendFailure(w, r, err)
				return
			}
			content = assignmentFormContent{
				ID:          a.ID,
				Title:       a.Title,
				Description: a.Description,
				DueDate:     formatDateTimeLocal(a.DueDate.Time),
				Action:      editAssignmentPath(a.ID),
			}
		} else if r.URL.Path != RouteTeacherNewAssignment {
			s.renderError(w, r, http.StatusNotFound, "That assignment could not be found.")
			return
		}

		s.render(w, r, http.StatusOK, pageAssignmentForm, pageData{
			Title:   formTitle(content.ID),
			Content: content,
		})
	}
}

// AssignmentSaveHandler creates or updates an assignment
func (s *Server) AssignmentSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		id, editing := pathID(r)
		content := assignmentFormContent{
			Title:       strings.TrimSpace(r.PostFormValue("title")),
			Description: strings.TrimSpace(r.PostFormValue("description")),
			DueDate:     r.PostFormValue("dueDate"),
			Action:      RouteTeacherNewAssignment,
		}
		if editing {
			content.ID = id
			content.Action = editAssignmentPath(id)
		}

		input := assignments.AssignmentInput{Title: content.Title, Description: content.Description}
		fieldErrs := validation.FieldErrors{}
		if content.DueDate != "" {
			due, err := time.ParseInLocation(dateTimeLocalLayout, content.DueDate, time.Local)
			if err != nil {
				fieldErrs["dueDate"] = "dueDate must be a date and time"
			}
			input.DueDate = due
		}
		if err := s.validate.Struct(input); err != nil {
			var invalid validation.FieldErrors
			if !errs.As(err, &invalid) {
				s.renderError(w, r, http.StatusInternalServerError, "The form could not be checked.")
				return
			}
			for field, msg := range invalid {
				if _, seen := fieldErrs[field]; !seen {
					fieldErrs[field] = msg
				}
			}
		}
		if len(fieldErrs) > 0 {
			s.render(w, r, http.StatusUnprocessableEntity, pageAssignmentForm, pageData{
				Title:       formTitle(content.ID),
				FieldErrors: fieldErrs,
				Content:     content,
			})
			return
		}

		svc := s.assignmentsFor(r)
		var err error
		if editing {
			_, err = svc.UpdateAssignment(r.Context(), id, input)
		} else {
			_, err = svc.CreateAssignment(r.Context(), input)
		}
		if errs.Is(err, errs.ErrInvalidInput) {
			s.render(w, r, http.StatusUnprocessableEntity, pageAssignmentForm, pageData{
				Title:   formTitle(content.ID),
				Error:   backendMessage(err, "The assignment was rejected by the server."),
				Content: content,
			})
			return
		}
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		log.Info().Int("id", id).Bool("update", editing).Msg("Teacher: assignment saved")
		redirectSuccess(w, r, RouteTeacherDashboard)
	}
}

func (s *Server) AssignmentDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.renderError(w, r, http.StatusNotFound, "That assignment could not be found.")
			return
		}
		if err := s.assignmentsFor(r).DeleteAssignment(r.Context(), id); err != nil {
			s.backendFailure(w, r, err)
			return
		}
		log.Info().Int("id", id).Msg("Teacher: assignment deleted")
		redirectSuccess(w, r, RouteTeacherDashboard)
	}
}

// SubmissionsHandler is the grading view of one assignment
func (s *Server) SubmissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.renderError(w, r, http.StatusNotFound, "That assignment could not be found.")
			return
		}

		svc := s.assignmentsFor(r)
		a, err := svc.TeacherAssignment(r.Context(), id)
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}
		page, err := svc.AssignmentSubmissions(r.Context(), id, assignments.PageRequest{
			Page:     queryInt(r, "page", 1),
			PageSize: submissionsPageSize,
		})
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		content := submissionsContent{
			Assignment:  a,
			Submissions: page.Submissions,
			Pagination:  page.Pagination,
		}
		if page.Page > 1 {
			content.PrevPage = page.Page - 1
		}
		if page.Page < page.TotalPages {
			content.NextPage = page.Page + 1
		}

		s.render(w, r, http.StatusOK, pageSubmissions, pageData{
			Title:   "Submissions: " + a.Title,
			Error:   r.URL.Query().Get("error"),
			Content: content,
		})
	}
}

// SubmissionsExportHandler downloads every submission of an assignment as XLSX
func (s *Server) SubmissionsExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.renderError(w, r, http.StatusNotFound, "That assignment could not be found.")
			return
		}

		svc := s.assignmentsFor(r)
		a, err := svc.TeacherAssignment(r.Context(), id)
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		var all []assignments.Submission
		for pageNo := 1; ; pageNo++ {
			page, err := svc.AssignmentSubmissions(r.Context(), id, assignments.PageRequest{Page: pageNo, PageSize: 100})
			if err != nil {
				s.backendFailure(w, r, err)
				return
			}
			all = append(all, page.Submissions...)
			if pageNo >= page.TotalPages || len(page.Submissions) == 0 {
				break
			}
		}

		var buf bytes.Buffer
		if err := export.WriteSubmissions(&buf, a, all); err != nil {
			log.Err(err).Int("assignment", id).Msg("Teacher: export failed")
			s.renderError(w, r, http.StatusInternalServerError, "The export could not be created.")
			return
		}

		w.Header().Set("Content-Type", export.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(a)))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = buf.WriteTo(w)
	}
}

// GradeHandler records a grade and returns to the grading view
func (s *Server) GradeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, ok := pathID(r)
		if !ok {
			s.renderError(w, r, http.StatusNotFound, "That submission could not be found.")
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		back := RouteTeacherDashboard
		if assignmentID, err := strconv.Atoi(r.PostFormValue("assignmentId")); err == nil && assignmentID > 0 {
			back = submissionsPath(assignmentID)
		}
		extra := url.Values{}
		if page := r.PostFormValue("page"); page != "" {
			extra.Set("page", page)
		}

		req := assignments.GradeRequest{
			Grade:    strings.TrimSpace(r.PostFormValue("grade")),
			Comments: strings.TrimSpace(r.PostFormValue("comments")),
		}
		if err := s.validate.Struct(req); err != nil {
			redirectWithError(w, r, back, err.Error(), extra)
			return
		}

		_, err := s.assignmentsFor(r).GradeSubmission(r.Context(), submissionID, req)
		if errs.Is(err, errs.ErrInvalidInput) {
			redirectWithError(w, r, back, backendMessage(err, "The grade was rejected by the server."), extra)
			return
		}
		if err != nil {
			s.backendFailure(w, r, err)
			return
		}

		log.Info().Int("submission", submissionID).Msg("Teacher: submission graded")
		if len(extra) > 0 {
			back += "?" + extra.Encode()
		}
		redirectSuccess(w, r, back)
	}
}

func editAssignmentPath(id int) string {
	return strings.Replace(RouteTeacherEditAssignment, "{id}", strconv.Itoa(id), 1)
}

func submissionsPath(id int) string {
	return strings.Replace(RouteTeacherSubmissions, "{id}", strconv.Itoa(id), 1)
}

func formatDateTimeLocal(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateTimeLocalLayout)
}

func formTitle(id int) string {
	if id == 0 {
		return "New assignment"
	}
	return "Edit assignment"
}
