// Package tokenstore persists the one bearer token each browser owns.
//
// The token either lives in an encrypted cookie or in a server-side Repo
// addressed by a slot id carried in that cookie.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jrsteele09/taskflow/internal/config"
	"github.com/jrsteele09/taskflow/session"
	"github.com/rs/zerolog/log"
)

const slotIDKey = "sid"

type Config interface {
	config.SessionConfig
	config.SecurityConfig
}

// Factory hands out the token slot for a request
type Factory struct {
	store      *sessions.CookieStore
	cookieName string
	tokenKey   string
	maxAge     time.Duration
	repo       Repo
}

// New builds a Factory. A nil repo keeps the token in the cookie itself.
func New(cfg Config, repo Repo) (*Factory, error) {
	hashKey, blockKey, err := cookieKeys(cfg.GetSessionSecret())
	if err != nil {
		return nil, fmt.Errorf("[tokenstore New] %w", err)
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.MaxAge(int(cfg.GetMaxSessionAge().Seconds()))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.GetCookieSecure()
	store.Options.SameSite = http.SameSiteLaxMode

	return &Factory{
		store:      store,
		cookieName: cfg.GetSessionCookieName(),
		tokenKey:   cfg.GetTokenKey(),
		maxAge:     cfg.GetMaxSessionAge(),
		repo:       repo,
	}, nil
}

// For returns the slot for the browser behind r. The slot is safe for
// concurrent use within the request.
func (f *Factory) For(w http.ResponseWriter, r *http.Request) session.TokenStore {
	return &slot{factory: f, w: w, r: r}
}

type slot struct {
	factory *Factory
	w       http.ResponseWriter
	r       *http.Request

	mu     sync.Mutex
	cookie *sessions.Session
}

var _ session.TokenStore = (*slot)(nil)

// load decodes the cookie once per request. Callers hold mu.
func (s *slot) load() *sessions.Session {
	if s.cookie != nil {
		return s.cookie
	}
	cookie, err := s.factory.store.New(s.r, s.factory.cookieName)
	if err != nil {
		// tampered, or signed with an older key: start from an empty slot
		log.Debug().Err(err).Msg("TokenStore: discarding unreadable session cookie")
	}
	s.cookie = cookie
	return cookie
}

func (s *slot) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cookie := s.load()
	if s.factory.repo == nil {
		token, _ := cookie.Values[s.factory.tokenKey].(string)
		return token, nil
	}

	slotID, _ := cookie.Values[slotIDKey].(string)
	if slotID == "" {
		return "", nil
	}
	token, err := s.factory.repo.Get(ctx, slotID)
	if errors.Is(err, ErrSlotNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("[tokenstore Load] %w", err)
	}
	return token, nil
}

func (s *slot) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cookie := s.load()
	if s.factory.repo == nil {
		cookie.Values[s.factory.tokenKey] = token
	} else {
		slotID, _ := cookie.Values[slotIDKey].(string)
		if slotID == "" {
			slotID = uuid.NewString()
		}
		if err := s.factory.repo.Upsert(ctx, slotID, token, s.factory.maxAge); err != nil {
			return fmt.Errorf("[tokenstore Save] %w", err)
		}
		cookie.Values[slotIDKey] = slotID
	}

	cookie.Options.MaxAge = s.factory.store.Options.MaxAge
	if err := s.factory.store.Save(s.r, s.w, cookie); err != nil {
		return fmt.Errorf("[tokenstore Save] write cookie: %w", err)
	}
	return nil
}

// Clear empties the slot and expires the cookie. Clearing an empty slot
// writes nothing.
func (s *slot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cookie := s.load()
	if cookie.IsNew && len(cookie.Values) == 0 {
		return nil
	}

	if s.factory.repo != nil {
		if slotID, _ := cookie.Values[slotIDKey].(string); slotID != "" {
			if err := s.factory.repo.Delete(ctx, slotID); err != nil {
				return fmt.Errorf("[tokenstore Clear] %w", err)
			}
		}
	}

	for k := range cookie.Values {
		delete(cookie.Values, k)
	}
	cookie.Options.MaxAge = -1
	if err := s.factory.store.Save(s.r, s.w, cookie); err != nil {
		return fmt.Errorf("[tokenstore Clear] expire cookie: %w", err)
	}
	return nil
}
