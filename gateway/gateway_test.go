package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/taskflow/gateway"
	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/jrsteele09/taskflow/session"
	"github.com/jrsteele09/taskflow/session/storefake"
	"github.com/jrsteele09/taskflow/token/tokenfake"
	"github.com/stretchr/testify/require"
)

type backendConfig struct {
	url string
}

func (b backendConfig) GetAPIBaseURL() string            { return b.url }
func (b backendConfig) GetRequestTimeout() time.Duration { return 2 * time.Second }
func (b backendConfig) GetInsecureSkipVerify() bool      { return false }

type fakeCredential struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (f *fakeCredential) BearerToken(context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != ""
}

func (f *fakeCredential) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.token = ""
	return nil
}

func newClient(t *testing.T, handler http.HandlerFunc, opts ...gateway.Option) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := gateway.New(backendConfig{url: srv.URL + "/api"}, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := gateway.New(backendConfig{url: "ftp://example.com"})
	require.Error(t, err)

	_, err = gateway.New(backendConfig{url: "://nope"})
	require.Error(t, err)
}

func TestRequester_AttachesBearer(t *testing.T) {
	var gotAuth, gotRequestID, gotPath, gotQuery string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	})

	var out struct {
		Name string `json:"name"`
	}
	err := c.Bind(&fakeCredential{token: "abc.def.ghi"}).Get(context.Background(), "/Teacher/my-assignments", url.Values{"page": {"2"}}, &out)
	require.NoError(t, err)
	require.Equal(t, "Bearer abc.def.ghi", gotAuth)
	require.NotEmpty(t, gotRequestID)
	require.Equal(t, "/api/Teacher/my-assignments", gotPath)
	require.Equal(t, "page=2", gotQuery)
	require.Equal(t, "ok", out.Name)
}

func TestRequester_NoBearerWithoutSession(t *testing.T) {
	var gotAuth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Bind(&fakeCredential{}).Delete(context.Background(), "/Teacher/assignments/1"))
	require.Empty(t, gotAuth)

	require.NoError(t, c.Bind(nil).Delete(context.Background(), "/Teacher/assignments/1"))
	require.Empty(t, gotAuth)
}

func TestRequester_SendsJSONBody(t *testing.T) {
	var got map[string]string
	var contentType string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	})

	var out struct {
		ID int `json:"id"`
	}
	err := c.Bind(&fakeCredential{token: "t.t.t"}).Post(context.Background(), "/Teacher/create-assignment", map[string]string{"title": "Essay"}, &out)
	require.NoError(t, err)
	require.Equal(t, "application/json", contentType)
	require.Equal(t, "Essay", got["title"])
	require.Equal(t, 7, out.ID)
}

func TestRequester_UnauthorizedInvalidatesFirst(t *testing.T) {
	var hookCalls int
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, gateway.WithUnauthorizedHook(func(method, path string) {
		hookCalls++
		require.Equal(t, http.MethodPut, method)
	}))

	cred := &fakeCredential{token: "a.b.c"}
	err := c.Bind(cred).Put(context.Background(), "/Teacher/submissions/3/grade", map[string]string{"grade": "A"}, nil)
	require.ErrorIs(t, err, errs.ErrAuthorizationDenied)
	require.Equal(t, 1, cred.invalidated)
	require.Equal(t, 1, hookCalls)

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestRequester_UnauthorizedEndsManagedSession(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	store := storefake.NewFakeTokenStore(tokenfake.Mint("teacher", time.Now().Add(time.Hour)))
	manager := session.NewManager(store, c)

	before, err := manager.Current(context.Background())
	require.NoError(t, err)
	require.True(t, before.IsValid())

	err = c.Bind(manager).Get(context.Background(), "/Teacher/my-assignments", nil, nil)
	require.ErrorIs(t, err, errs.ErrAuthorizationDenied)

	after, err := manager.Current(context.Background())
	require.NoError(t, err)
	require.False(t, after.IsValid())
	require.Empty(t, store.Token())
}

func TestRequester_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		message string
	}{
		{"not found problem details", http.StatusNotFound, `{"title":"Not Found","status":404}`, errs.ErrNotFound, "Not Found"},
		{"bad request message", http.StatusBadRequest, `{"message":"Due date must be in the future"}`, errs.ErrInvalidInput, "Due date must be in the future"},
		{"plain text", http.StatusInternalServerError, "boom", nil, "boom"},
		{"json string", http.StatusConflict, `"already submitted"`, nil, "already submitted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			cred := &fakeCredential{token: "a.b.c"}
			err := c.Bind(cred).Get(context.Background(), "/Student/assignments/9", nil, nil)

			var statusErr *gateway.StatusError
			require.ErrorAs(t, err, &statusErr)
			require.Equal(t, tt.status, statusErr.StatusCode)
			require.Equal(t, tt.message, statusErr.Message)
			if tt.target != nil {
				require.ErrorIs(t, err, tt.target)
			}
			require.Zero(t, cred.invalidated)
		})
	}
}

func TestRequester_BackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := gateway.New(backendConfig{url: srv.URL})
	require.NoError(t, err)

	err = c.Bind(nil).Get(context.Background(), "/Account/me", nil, nil)
	require.ErrorIs(t, err, errs.ErrBackendUnavailable)
}

func TestRequester_BadJSON(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	var out map[string]any
	err := c.Bind(nil).Get(context.Background(), "/Account/me", nil, &out)
	require.ErrorIs(t, err, errs.ErrBadResponse)
}

func TestAuthenticate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got map[string]string
		var gotAuth string
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/Account/login", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"token":"x.y.z","user":{"id":"1","username":"jdoe","role":"teacher"}}`))
		})

		tok, err := c.Authenticate(context.Background(), session.Credentials{Username: "jdoe", Password: "pw"})
		require.NoError(t, err)
		require.Equal(t, "x.y.z", tok)
		require.Equal(t, "jdoe", got["username"])
		require.Equal(t, "pw", got["password"])
		require.Empty(t, gotAuth)
	})

	t.Run("rejected", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := c.Authenticate(context.Background(), session.Credentials{Username: "jdoe", Password: "bad"})
		require.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("no token", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})
		_, err := c.Authenticate(context.Background(), session.Credentials{Username: "jdoe", Password: "pw"})
		require.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})
}
