// Package export writes grade books as spreadsheets.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jrsteele09/taskflow/assignments"
	"github.com/jrsteele09/taskflow/internal/utils"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetName       = "Submissions"
	dateLayout      = "2006-01-02 15:04"
)

var headers = []string{"Student", "Submitted", "Grade", "Comments", "Graded", "Graded by"}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename is the download name for an assignment's grade book
func Filename(a assignments.Assignment) string {
	title := strings.Trim(unsafeFilename.ReplaceAllString(a.Title, "_"), "_")
	if title == "" {
		title = "assignment"
	}
	return fmt.Sprintf("%s_%d_submissions.xlsx", title, a.ID)
}

// WriteSubmissions writes one row per submission
func WriteSubmissions(w io.Writer, a assignments.Assignment, submissions []assignments.Submission) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("[export WriteSubmissions] %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: a.Title, Creator: "TaskFlow"}); err != nil {
		return fmt.Errorf("[export WriteSubmissions] %w", err)
	}

	for i, h := range headers {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}

	for idx, s := range submissions {
		row := idx + 2
		graded := ""
		if t := utils.Value(s.GradedDate); !t.IsZero() {
			graded = t.Format(dateLayout)
		}
		submitted := ""
		if !s.SubmissionDate.IsZero() {
			submitted = s.SubmissionDate.Format(dateLayout)
		}

		values := []any{s.StudentID, submitted, string(utils.ValueOr(s.Grade, "")), s.Comments, graded, s.GradedBy}
		for col, v := range values {
			if v == "" {
				continue
			}
			if err := setCell(f, col+1, row, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 20)
	_ = f.SetColWidth(SheetName, "B", "B", 18)
	_ = f.SetColWidth(SheetName, "C", "C", 10)
	_ = f.SetColWidth(SheetName, "D", "D", 40)
	_ = f.SetColWidth(SheetName, "E", "F", 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("[export WriteSubmissions] write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("[export setCell] %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("[export setCell] %s: %w", cell, err)
	}
	return nil
}
