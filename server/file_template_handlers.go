package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

// Pages rendered inside the layout
const (
	pageLogin              = "login.html"
	pageTeacherDashboard   = "teacher_dashboard.html"
	pageAssignmentForm     = "assignment_form.html"
	pageSubmissions        = "submissions.html"
	pageStudentDashboard   = "student_dashboard.html"
	pageStudentAssignments = "student_assignments.html"
	pageStudentAssignment  = "student_assignment.html"
	pageError              = "error.html"
)

var pageNames = []string{
	pageLogin,
	pageTeacherDashboard,
	pageAssignmentForm,
	pageSubmissions,
	pageStudentDashboard,
	pageStudentAssignments,
	pageStudentAssignment,
	pageError,
}

func TemplateFilesFS() fs.FS {
	return subFS(templateFiles, "templates")
}

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("02 Jan 2006 15:04")
	},
	"inputDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format(dateTimeLocalLayout)
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"add": func(a, b int) int { return a + b },
}

// ParseTemplate parses a page together with the shared layout
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}
