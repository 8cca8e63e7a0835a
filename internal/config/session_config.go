package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultRoleClaim is the claim URI the backend uses for the user's role
const DefaultRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// Token slot backends
const (
	StoreCookie = "cookie"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

const (
	sessionStoreKey     = "session.store"
	sessionTokenKey     = "session.token_key"
	sessionCookieKey    = "session.cookie_name"
	sessionRoleClaimKey = "session.role_claim"
	redisAddrKey        = "redis.addr"
	redisPasswordKey    = "redis.password"
	redisDBKey          = "redis.db"
)

type SessionConfig interface {
	GetSessionStore() string
	GetTokenKey() string
	GetSessionCookieName() string
	GetRoleClaim() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type Session struct {
	v *viper.Viper
}

var _ SessionConfig = Session{}

func (s Session) GetSessionStore() string {
	return strings.ToLower(s.v.GetString(sessionStoreKey))
}

// GetTokenKey is the name the bearer token is persisted under
func (s Session) GetTokenKey() string {
	return s.v.GetString(sessionTokenKey)
}

func (s Session) GetSessionCookieName() string {
	return s.v.GetString(sessionCookieKey)
}

func (s Session) GetRoleClaim() string {
	return s.v.GetString(sessionRoleClaimKey)
}

func (s Session) GetRedisAddr() string {
	return s.v.GetString(redisAddrKey)
}

func (s Session) GetRedisPassword() string {
	return s.v.GetString(redisPasswordKey)
}

func (s Session) GetRedisDB() int {
	return s.v.GetInt(redisDBKey)
}
