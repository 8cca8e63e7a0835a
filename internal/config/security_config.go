package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	sessionSecretKey = "session.secret"
	sessionMaxAgeKey = "session.max_age"
	cookieSecureKey  = "session.cookie_secure"
)

type SecurityConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() time.Duration
	GetCookieSecure() bool
}

type Security struct {
	v *viper.Viper
}

var _ SecurityConfig = Security{}

// GetSessionSecret seeds the cookie signing and encryption keys. Empty means random keys per process.
func (s Security) GetSessionSecret() string {
	return s.v.GetString(sessionSecretKey)
}

// GetMaxSessionAge bounds the cookie lifetime; token expiry still decides validity
func (s Security) GetMaxSessionAge() time.Duration {
	return s.v.GetDuration(sessionMaxAgeKey)
}

func (s Security) GetCookieSecure() bool {
	return s.v.GetBool(cookieSecureKey)
}
