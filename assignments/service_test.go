package assignments_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/taskflow/assignments"
	"github.com/jrsteele09/taskflow/gateway"
	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendConfig struct {
	url string
}

func (b backendConfig) GetAPIBaseURL() string            { return b.url }
func (b backendConfig) GetRequestTimeout() time.Duration { return 2 * time.Second }
func (b backendConfig) GetInsecureSkipVerify() bool      { return false }

type staticCredential string

func (c staticCredential) BearerToken(context.Context) (string, bool) { return string(c), c != "" }
func (c staticCredential) Invalidate(context.Context) error           { return nil }

func newService(t *testing.T, mux *http.ServeMux) *assignments.Service {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := gateway.New(backendConfig{url: srv.URL + "/api"})
	require.NoError(t, err)
	return assignments.NewService(client.Bind(staticCredential("a.b.c")))
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func TestStudentAssignments_JoinsBothLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/Student/assignments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"assignments":[{"id":1,"title":"Essay"},{"id":2,"title":"Lab"}],"total":2,"page":1,"pageSize":10,"totalPages":1}`)
	})
	mux.HandleFunc("GET /api/Student/my-submissions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"submissions":[{"id":10,"assignmentId":1,"grade":null}]}`)
	})

	views, err := newService(t, mux).StudentAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Essay", views[0].Title)
	assert.Equal(t, assignments.StatusSubmitted, views[0].Status)
	assert.Equal(t, assignments.StatusPending, views[1].Status)
}

func TestStudentAssignments_FailsWhenEitherListFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/Student/assignments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"assignments":[]}`)
	})
	mux.HandleFunc("GET /api/Student/my-submissions", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := newService(t, mux).StudentAssignments(context.Background())
	require.Error(t, err)
	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestStudentAssignment_Graded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/Student/assignments/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"id":1,"title":"Essay"}`)
	})
	mux.HandleFunc("GET /api/Student/my-submissions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"submissions":[{"id":10,"assignmentId":1,"grade":"85","comments":"good"}]}`)
	})

	view, err := newService(t, mux).StudentAssignment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, assignments.StatusGraded, view.Status)
	require.NotNil(t, view.Submission)
	assert.Equal(t, "good", view.Submission.Comments)
}

func TestSubmissionFor_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/Student/my-submissions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"submissions":[{"id":10,"assignmentId":1}]}`)
	})
	svc := newService(t, mux)

	sub, err := svc.SubmissionFor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, sub.ID)

	_, err = svc.SubmissionFor(context.Background(), 2)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSubmit_PostsContent(t *testing.T) {
	var got assignments.SubmissionInput
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/Student/assignments/3/submit", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, `{"id":99,"assignmentId":3,"content":"my answer"}`)
	})

	created, err := newService(t, mux).Submit(context.Background(), 3, assignments.SubmissionInput{Content: "my answer"})
	require.NoError(t, err)
	assert.Equal(t, "my answer", got.Content)
	assert.Equal(t, 99, created.ID)
}

func TestTeacherAssignments_EmptyListIsNotNil(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/Teacher/my-assignments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"assignments":null}`)
	})

	list, err := newService(t, mux).TeacherAssignments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTeacherAssignment_LooksUpOwnList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/Teacher/my-assignments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"assignments":[{"id":4,"title":"Quiz"}]}`)
	})
	svc := newService(t, mux)

	a, err := svc.TeacherAssignment(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Quiz", a.Title)

	_, err = svc.TeacherAssignment(context.Background(), 5)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTeacherCRUD(t *testing.T) {
	var created, updated, deleted atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/Teacher/create-assignment", func(w http.ResponseWriter, r *http.Request) {
		created.Add(1)
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		assert.Equal(t, "Essay", in["title"])
		assert.Equal(t, "2025-04-01T09:00:00Z", in["dueDate"])
		writeJSON(w, `{"id":12,"title":"Essay"}`)
	})
	mux.HandleFunc("PUT /api/Teacher/assignments/12", func(w http.ResponseWriter, r *http.Request) {
		updated.Add(1)
		writeJSON(w, `{"id":12,"title":"Essay v2"}`)
	})
	mux.HandleFunc("DELETE /api/Teacher/assignments/12", func(w http.ResponseWriter, r *http.Request) {
		deleted.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	svc := newService(t, mux)
	ctx := context.Background()

	in := assignments.AssignmentInput{
		Title:       "Essay",
		Description: "500 words",
		DueDate:     time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
	}
	a, err := svc.CreateAssignment(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 12, a.ID)

	in.Title = "Essay v2"
	a, err = svc.UpdateAssignment(ctx, 12, in)
	require.NoError(t, err)
	assert.Equal(t, "Essay v2", a.Title)

	require.NoError(t, svc.DeleteAssignment(ctx, 12))

	assert.EqualValues(t, 1, created.Load())
	assert.EqualValues(t, 1, updated.Load())
	assert.EqualValues(t, 1, deleted.Load())
}

func TestAssignmentSubmissions_Paging(t *testing.T) {
	var gotPage, gotSize string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/Teacher/assignments/4/submissions", func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotSize = r.URL.Query().Get("pageSize")
		writeJSON(w, `{"submissions":[{"id":1,"assignmentId":4,"studentId":"s1"}],"total":21,"page":2,"pageSize":10,"totalPages":3}`)
	})

	page, err := newService(t, mux).AssignmentSubmissions(context.Background(), 4, assignments.PageRequest{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "10", gotSize)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Submissions, 1)
	assert.Equal(t, "s1", page.Submissions[0].StudentID)
}

func TestGradeSubmission(t *testing.T) {
	var got assignments.GradeRequest
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/Teacher/submissions/10/grade", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, `{"id":10,"assignmentId":4,"grade":"A","comments":"nice"}`)
	})

	graded, err := newService(t, mux).GradeSubmission(context.Background(), 10, assignments.GradeRequest{Grade: "A", Comments: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "A", got.Grade)
	assert.True(t, graded.IsGraded())
}
