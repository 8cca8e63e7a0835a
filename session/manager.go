package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/taskflow/internal/config"
	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/jrsteele09/taskflow/token"
	"github.com/rs/zerolog/log"
)

// Manager owns one client's session. Every read and write of the token slot
// goes through it.
type Manager struct {
	store     TokenStore
	auth      Authenticator
	roleClaim string
	now       func() time.Time
}

type Option func(*Manager)

// WithClock overrides time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithRoleClaim sets the claim name the role is read from
func WithRoleClaim(claim string) Option {
	return func(m *Manager) {
		if claim != "" {
			m.roleClaim = claim
		}
	}
}

func NewManager(store TokenStore, auth Authenticator, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		auth:      auth,
		roleClaim: config.DefaultRoleClaim,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login authenticates against the backend and persists the returned token.
// On any failure the slot is left empty.
func (m *Manager) Login(ctx context.Context, creds Credentials) (Role, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return "", fmt.Errorf("[Manager Login] username and password are required: %w", errs.ErrAuthenticationFailed)
	}

	rawToken, err := m.auth.Authenticate(ctx, creds)
	if err != nil {
		m.discard(ctx)
		if errs.Is(err, errs.ErrAuthenticationFailed) {
			return "", fmt.Errorf("[Manager Login] %w", err)
		}
		return "", fmt.Errorf("[Manager Login] %w: %w", errs.ErrAuthenticationFailed, err)
	}

	session, err := m.evaluate(rawToken)
	if err != nil {
		m.discard(ctx)
		return "", fmt.Errorf("[Manager Login] %w", err)
	}

	if err := m.store.Save(ctx, rawToken); err != nil {
		return "", fmt.Errorf("[Manager Login] failed to persist token: %w", err)
	}

	log.Info().Str("role", string(session.Role)).Str("sub", session.Subject).Msg("Session: logged in")
	return session.Role, nil
}

// Logout empties the token slot. Logging out twice is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("[Manager Logout] %w", err)
	}
	return nil
}

// Current re-reads the token slot and re-checks expiry. Absent, unreadable and
// expired tokens all come back as StatusUnauthenticated with a nil error; the
// last two are removed from the slot. The error is only set when the slot
// itself fails, and the session is then still unauthenticated.
func (m *Manager) Current(ctx context.Context) (Session, error) {
	anonymous := Session{Status: StatusUnauthenticated}

	rawToken, err := m.store.Load(ctx)
	if err != nil {
		log.Err(err).Msg("Session: failed to read token slot")
		return anonymous, fmt.Errorf("[Manager Current] %w", err)
	}
	if rawToken == "" {
		return anonymous, nil
	}

	session, err := m.evaluate(rawToken)
	switch {
	case err == nil:
		return session, nil
	case errs.Is(err, errs.ErrTokenExpired):
		anonymous.Lapsed = true
		log.Debug().Time("exp", session.ExpiresAt).Msg("Session: token expired")
	default:
		log.Warn().Err(err).Msg("Session: discarding unreadable token")
	}

	if err := m.store.Clear(ctx); err != nil {
		log.Err(err).Msg("Session: failed to clear token slot")
		return anonymous, fmt.Errorf("[Manager Current] %w", err)
	}
	return anonymous, nil
}

// BearerToken returns the token of a currently valid session
func (m *Manager) BearerToken(ctx context.Context) (string, bool) {
	session, _ := m.Current(ctx)
	if !session.IsValid() {
		return "", false
	}
	return session.Token, true
}

// Invalidate is called when the backend rejects the token
func (m *Manager) Invalidate(ctx context.Context) error {
	log.Info().Msg("Session: backend denied authorization, logging out")
	return m.Logout(ctx)
}

// evaluate decodes rawToken. An expired token returns StatusExpired together
// with ErrTokenExpired.
func (m *Manager) evaluate(rawToken string) (Session, error) {
	claims, err := token.Decode(rawToken, m.roleClaim)
	if err != nil {
		return Session{Status: StatusUnauthenticated}, fmt.Errorf("%w: %w", errs.ErrInvalidToken, err)
	}

	role, ok := firstRole(claims.Roles)
	if !ok {
		return Session{Status: StatusUnauthenticated}, fmt.Errorf("%w: unrecognised role %v", errs.ErrInvalidToken, claims.Roles)
	}

	session := Session{
		Token:     rawToken,
		Role:      role,
		Subject:   claims.Subject,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt,
		Status:    StatusValid,
	}
	if !claims.ExpiresAt.After(m.now()) {
		session.Status = StatusExpired
		return session, errs.ErrTokenExpired
	}
	return session, nil
}

func (m *Manager) discard(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		log.Err(err).Msg("Session: failed to clear token slot after failed login")
	}
}

func firstRole(claimed []string) (Role, bool) {
	for _, c := range claimed {
		if role, ok := ParseRole(c); ok {
			return role, true
		}
	}
	return "", false
}
