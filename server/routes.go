package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/taskflow/routeguard"
)

func (s *Server) initRoutes() {
	loginView := routeguard.View{Path: RouteLogin, Area: routeguard.AreaLogin}
	teacher := func(path string) routeguard.View {
		return routeguard.View{Path: path, Area: routeguard.AreaTeacher}
	}
	student := func(path string) routeguard.View {
		return routeguard.View{Path: path, Area: routeguard.AreaStudent}
	}

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare(s.RequireView(loginView))...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Teacher area
	s.RegisterRouteHandler("GET "+RouteTeacherDashboard, ChainMiddleware(s.TeacherDashboardHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherDashboard)))...))
	s.RegisterRouteHandler("GET "+RouteTeacherNewAssignment, ChainMiddleware(s.AssignmentFormHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherNewAssignment)))...))
	s.RegisterRouteHandler("POST "+RouteTeacherNewAssignment, ChainMiddleware(s.AssignmentSaveHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherNewAssignment)))...))
	s.RegisterRouteHandler("GET "+RouteTeacherEditAssignment, ChainMiddleware(s.AssignmentFormHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherEditAssignment)))...))
	s.RegisterRouteHandler("POST "+RouteTeacherEditAssignment, ChainMiddleware(s.AssignmentSaveHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherEditAssignment)))...))
	s.RegisterRouteHandler("POST "+RouteTeacherDeleteAssignment, ChainMiddleware(s.AssignmentDeleteHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherDeleteAssignment)))...))
	s.RegisterRouteHandler("GET "+RouteTeacherSubmissions, ChainMiddleware(s.SubmissionsHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherSubmissions)))...))
	s.RegisterRouteHandler("GET "+RouteTeacherSubmissionsXLSX, ChainMiddleware(s.SubmissionsExportHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherSubmissionsXLSX)))...))
	s.RegisterRouteHandler("POST "+RouteTeacherGrade, ChainMiddleware(s.GradeHandler(), s.HTMLMiddleWare(s.RequireView(teacher(RouteTeacherGrade)))...))

	// Student area
	s.RegisterRouteHandler("GET "+RouteStudentDashboard, ChainMiddleware(s.StudentDashboardHandler(), s.HTMLMiddleWare(s.RequireView(student(RouteStudentDashboard)))...))
	s.RegisterRouteHandler("GET "+RouteStudentAssignments, ChainMiddleware(s.StudentAssignmentsHandler(), s.HTMLMiddleWare(s.RequireView(student(RouteStudentAssignments)))...))
	s.RegisterRouteHandler("GET "+RouteStudentAssignment, ChainMiddleware(s.StudentAssignmentHandler(), s.HTMLMiddleWare(s.RequireView(student(RouteStudentAssignment)))...))
	s.RegisterRouteHandler("POST "+RouteStudentSubmit, ChainMiddleware(s.SubmitHandler(), s.HTMLMiddleWare(s.RequireView(student(RouteStudentSubmit)))...))

	// Operations
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.handler())

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := chi.URLParam(r, "file")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
