package assignments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusGraded    Status = "graded"
)

type Assignment struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     Timestamp `json:"dueDate"`
	CreatedDate Timestamp `json:"createdDate"`
	CreatedBy   string    `json:"createdBy"`
}

// Overdue reports whether the due date has passed
func (a Assignment) Overdue(now time.Time) bool {
	return !a.DueDate.IsZero() && a.DueDate.Before(now)
}

type Submission struct {
	ID             int        `json:"id"`
	AssignmentID   int        `json:"assignmentId"`
	StudentID      string     `json:"studentId"`
	SubmissionDate Timestamp  `json:"submissionDate"`
	Content        string     `json:"content"`
	Grade          *Grade     `json:"grade"`
	GradedDate     *Timestamp `json:"gradedDate"`
	GradedBy       string     `json:"gradedBy"`
	Comments       string     `json:"comments"`
}

// IsGraded is true once a non-empty grade has been recorded
func (s Submission) IsGraded() bool {
	return s.Grade != nil && strings.TrimSpace(string(*s.Grade)) != ""
}

// Grade is kept as text. The backend sends it either as a string or a number.
type Grade string

func (g *Grade) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = Grade(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("grade must be a string or a number: %w", err)
	}
	*g = Grade(n.String())
	return nil
}

// Timestamp accepts RFC 3339 as well as the zone-less ISO form ASP.NET emits
// for DateTime values; those are taken as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// AssignmentView is an assignment as the current student sees it
type AssignmentView struct {
	Assignment
	Status     Status
	Submission *Submission // the submission Status was derived from, if any
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

type assignmentPage struct {
	Assignments []Assignment `json:"assignments"`
	Pagination
}

type SubmissionPage struct {
	Submissions []Submission `json:"submissions"`
	Pagination
}

// PageRequest selects a page; zero values leave the choice to the backend
type PageRequest struct {
	Page     int
	PageSize int
}

type AssignmentInput struct {
	Title       string    `json:"title" form:"title" validate:"required,notblank,max=200"`
	Description string    `json:"description" form:"description" validate:"required,notblank,max=4000"`
	DueDate     time.Time `json:"dueDate" form:"dueDate" validate:"required"`
}

type SubmissionInput struct {
	Content string `json:"content" form:"content" validate:"required,notblank,max=20000"`
}

type GradeRequest struct {
	Grade    string `json:"grade" form:"grade" validate:"required,notblank,max=20"`
	Comments string `json:"comments" form:"comments" validate:"max=2000"`
}
