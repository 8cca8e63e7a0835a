package assignments

import (
	"sort"
)

// DeriveStatus joins one assignment against the student's submissions.
// Nothing is cached: call it whenever the lists are read.
func DeriveStatus(a Assignment, submissions []Submission) Status {
	return viewOf(a, indexSubmissions(submissions)[a.ID]).Status
}

// DeriveViews joins the assignment list against the submission list
func DeriveViews(list []Assignment, submissions []Submission) []AssignmentView {
	byAssignment := indexSubmissions(submissions)
	views := make([]AssignmentView, 0, len(list))
	for _, a := range list {
		views = append(views, viewOf(a, byAssignment[a.ID]))
	}
	return views
}

type Summary struct {
	Pending   int
	Submitted int
	Graded    int
}

func Summarize(views []AssignmentView) Summary {
	var s Summary
	for _, v := range views {
		switch v.Status {
		case StatusGraded:
			s.Graded++
		case StatusSubmitted:
			s.Submitted++
		default:
			s.Pending++
		}
	}
	return s
}

// SortByCreatedDesc returns a copy, newest first
func SortByCreatedDesc(list []Assignment) []Assignment {
	sorted := append([]Assignment(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedDate.After(sorted[j].CreatedDate.Time)
	})
	return sorted
}

func indexSubmissions(submissions []Submission) map[int][]Submission {
	byAssignment := make(map[int][]Submission, len(submissions))
	for _, s := range submissions {
		byAssignment[s.AssignmentID] = append(byAssignment[s.AssignmentID], s)
	}
	return byAssignment
}

// viewOf picks the submission that decides the status: the latest graded
// one, otherwise the latest one.
func viewOf(a Assignment, submissions []Submission) AssignmentView {
	view := AssignmentView{Assignment: a, Status: StatusPending}

	var latest, latestGraded *Submission
	for i := range submissions {
		s := &submissions[i]
		if latest == nil || s.SubmissionDate.After(latest.SubmissionDate.Time) {
			latest = s
		}
		if s.IsGraded() && (latestGraded == nil || s.SubmissionDate.After(latestGraded.SubmissionDate.Time)) {
			latestGraded = s
		}
	}

	switch {
	case latestGraded != nil:
		view.Status = StatusGraded
		view.Submission = latestGraded
	case latest != nil:
		view.Status = StatusSubmitted
		view.Submission = latest
	}
	return view
}
