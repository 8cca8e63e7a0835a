package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Login view and session
	RouteLogin      = "/"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// Teacher area
	RouteTeacherDashboard        = "/teacher/dashboard"
	RouteTeacherNewAssignment    = "/teacher/assignments/new"
	RouteTeacherEditAssignment   = "/teacher/assignments/{id}/edit"
	RouteTeacherDeleteAssignment = "/teacher/assignments/{id}/delete"
	RouteTeacherSubmissions      = "/teacher/assignments/{id}/submissions"
	RouteTeacherSubmissionsXLSX  = "/teacher/assignments/{id}/submissions.xlsx"
	RouteTeacherGrade            = "/teacher/submissions/{id}/grade"

	// Student area
	RouteStudentDashboard   = "/student/dashboard"
	RouteStudentAssignments = "/student/assignments"
	RouteStudentAssignment  = "/student/assignments/{id}"
	RouteStudentSubmit      = "/student/assignments/{id}/submit"

	// Operations
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/{file}"
)

// Notices shown on the login view
const (
	noticeExpired   = "expired"
	noticeSignedOut = "signed-out"
	noticeDenied    = "denied"
)
