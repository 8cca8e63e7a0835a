package assignments

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	errs "github.com/jrsteele09/taskflow/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	pathStudentAssignments = "/Student/assignments"
	pathMySubmissions      = "/Student/my-submissions"
	pathTeacherAssignments = "/Teacher/my-assignments"
	pathCreateAssignment   = "/Teacher/create-assignment"
)

func studentAssignmentPath(id int) string {
	return fmt.Sprintf("/Student/assignments/%d", id)
}

func submitPath(id int) string {
	return fmt.Sprintf("/Student/assignments/%d/submit", id)
}

func teacherAssignmentPath(id int) string {
	return fmt.Sprintf("/Teacher/assignments/%d", id)
}

func assignmentSubmissionsPath(id int) string {
	return fmt.Sprintf("/Teacher/assignments/%d/submissions", id)
}

func gradePath(submissionID int) string {
	return fmt.Sprintf("/Teacher/submissions/%d/grade", submissionID)
}

// Requester is the HTTP gateway as seen by the domain services
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
}

// Service maps assignment and submission calls onto the backend.
// It holds no state; errors come back as the gateway produced them.
type Service struct {
	api Requester
}

func NewService(api Requester) *Service {
	return &Service{api: api}
}

// StudentAssignments lists the student's assignments with their derived status
func (s *Service) StudentAssignments(ctx context.Context) ([]AssignmentView, error) {
	var (
		page        assignmentPage
		submissions SubmissionPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.api.Get(gctx, pathStudentAssignments, nil, &page)
	})
	g.Go(func() error {
		return s.api.Get(gctx, pathMySubmissions, nil, &submissions)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return DeriveViews(page.Assignments, submissions.Submissions), nil
}

// StudentAssignment returns one assignment with its derived status
func (s *Service) StudentAssignment(ctx context.Context, id int) (AssignmentView, error) {
	var (
		assignment  Assignment
		submissions SubmissionPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.api.Get(gctx, studentAssignmentPath(id), nil, &assignment)
	})
	g.Go(func() error {
		return s.api.Get(gctx, pathMySubmissions, nil, &submissions)
	})
	if err := g.Wait(); err != nil {
		return AssignmentView{}, err
	}

	return viewOf(assignment, indexSubmissions(submissions.Submissions)[assignment.ID]), nil
}

func (s *Service) MySubmissions(ctx context.Context) ([]Submission, error) {
	var page SubmissionPage
	if err := s.api.Get(ctx, pathMySubmissions, nil, &page); err != nil {
		return nil, err
	}
	return page.Submissions, nil
}

// SubmissionFor returns the student's submission for an assignment, or ErrNotFound
func (s *Service) SubmissionFor(ctx context.Context, assignmentID int) (Submission, error) {
	submissions, err := s.MySubmissions(ctx)
	if err != nil {
		return Submission{}, err
	}
	view := viewOf(Assignment{ID: assignmentID}, indexSubmissions(submissions)[assignmentID])
	if view.Submission == nil {
		return Submission{}, fmt.Errorf("submission for assignment %d: %w", assignmentID, errs.ErrNotFound)
	}
	return *view.Submission, nil
}

func (s *Service) Submit(ctx context.Context, assignmentID int, in SubmissionInput) (Submission, error) {
	var created Submission
	if err := s.api.Post(ctx, submitPath(assignmentID), in, &created); err != nil {
		return Submission{}, err
	}
	return created, nil
}

func (s *Service) TeacherAssignments(ctx context.Context) ([]Assignment, error) {
	var page assignmentPage
	if err := s.api.Get(ctx, pathTeacherAssignments, nil, &page); err != nil {
		return nil, err
	}
	if page.Assignments == nil {
		return []Assignment{}, nil
	}
	return page.Assignments, nil
}

// TeacherAssignment finds one of the teacher's own assignments. The backend
// has no teacher detail endpoint, so this reads the list.
func (s *Service) TeacherAssignment(ctx context.Context, id int) (Assignment, error) {
	list, err := s.TeacherAssignments(ctx)
	if err != nil {
		return Assignment{}, err
	}
	for _, a := range list {
		if a.ID == id {
			return a, nil
		}
	}
	return Assignment{}, fmt.Errorf("assignment %d: %w", id, errs.ErrNotFound)
}

func (s *Service) CreateAssignment(ctx context.Context, in AssignmentInput) (Assignment, error) {
	var created Assignment
	if err := s.api.Post(ctx, pathCreateAssignment, in, &created); err != nil {
		return Assignment{}, err
	}
	return created, nil
}

func (s *Service) UpdateAssignment(ctx context.Context, id int, in AssignmentInput) (Assignment, error) {
	var updated Assignment
	if err := s.api.Put(ctx, teacherAssignmentPath(id), in, &updated); err != nil {
		return Assignment{}, err
	}
	return updated, nil
}

func (s *Service) DeleteAssignment(ctx context.Context, id int) error {
	return s.api.Delete(ctx, teacherAssignmentPath(id))
}

// AssignmentSubmissions lists what students handed in for one assignment
func (s *Service) AssignmentSubmissions(ctx context.Context, assignmentID int, req PageRequest) (SubmissionPage, error) {
	query := url.Values{}
	if req.Page > 0 {
		query.Set("page", strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(req.PageSize))
	}

	var page SubmissionPage
	if err := s.api.Get(ctx, assignmentSubmissionsPath(assignmentID), query, &page); err != nil {
		return SubmissionPage{}, err
	}
	return page, nil
}

func (s *Service) GradeSubmission(ctx context.Context, submissionID int, req GradeRequest) (Submission, error) {
	var graded Submission
	if err := s.api.Put(ctx, gradePath(submissionID), req, &graded); err != nil {
		return Submission{}, err
	}
	return graded, nil
}
