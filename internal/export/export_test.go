package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/jrsteele09/taskflow/assignments"
	"github.com/jrsteele09/taskflow/internal/export"
	"github.com/jrsteele09/taskflow/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSubmissions(t *testing.T) {
	submitted := assignments.Timestamp{Time: time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)}
	graded := assignments.Timestamp{Time: time.Date(2025, 2, 11, 14, 0, 0, 0, time.UTC)}
	subs := []assignments.Submission{
		{ID: 1, StudentID: "alice", SubmissionDate: submitted, Grade: utils.Ptr(assignments.Grade("85")), Comments: "solid", GradedDate: &graded, GradedBy: "mr-t"},
		{ID: 2, StudentID: "bob", SubmissionDate: submitted},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteSubmissions(&buf, assignments.Assignment{ID: 4, Title: "Essay"}, subs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Student", "Submitted", "Grade", "Comments", "Graded", "Graded by"}, rows[0])
	assert.Equal(t, []string{"alice", "2025-02-10 09:30", "85", "solid", "2025-02-11 14:00", "mr-t"}, rows[1])
	assert.Equal(t, []string{"bob", "2025-02-10 09:30"}, rows[2])
}

func TestWriteSubmissions_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteSubmissions(&buf, assignments.Assignment{ID: 4}, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Essay_on_Rome_4_submissions.xlsx", export.Filename(assignments.Assignment{ID: 4, Title: "Essay on Rome!"}))
	assert.Equal(t, "assignment_9_submissions.xlsx", export.Filename(assignments.Assignment{ID: 9, Title: "???"}))
}
