package session

import (
	"context"
	"strings"
	"time"
)

// Role is the user's role as claimed by the bearer token. It only decides
// which views are offered; the backend authorises every call on its own.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole matches a role claim case-insensitively
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleTeacher:
		return RoleTeacher, true
	case RoleStudent:
		return RoleStudent, true
	default:
		return "", false
	}
}

type Status int

const (
	StatusUnauthenticated Status = iota
	StatusValid
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Session is the client's belief about who is logged in. Role, Subject, Name
// and ExpiresAt are only meaningful when Status is StatusValid.
type Session struct {
	Token     string
	Role      Role
	Subject   string
	Name      string
	ExpiresAt time.Time
	Status    Status

	// Lapsed is set on the read that discarded an expired token
	Lapsed bool
}

func (s Session) IsValid() bool {
	return s.Status == StatusValid
}

type Credentials struct {
	Username string `form:"username" validate:"required,notblank,max=256"`
	Password string `form:"password" validate:"required,max=256"`
}

// TokenStore is the single persisted token slot of one client.
// Load returns "" and no error when the slot is empty.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Authenticator exchanges credentials for a bearer token
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (string, error)
}

type AuthenticatorFunc func(ctx context.Context, creds Credentials) (string, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	return f(ctx, creds)
}
