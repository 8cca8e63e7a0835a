package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	apiBaseURLKey  = "api.base_url"
	apiTimeoutKey  = "api.timeout"
	apiInsecureKey = "api.insecure_skip_verify"
)

// BackendConfig describes the external assignment REST service.
type BackendConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetInsecureSkipVerify() bool
}

type Backend struct {
	v *viper.Viper
}

var _ BackendConfig = Backend{}

func (b Backend) GetAPIBaseURL() string {
	return strings.TrimRight(b.v.GetString(apiBaseURLKey), "/")
}

func (b Backend) GetRequestTimeout() time.Duration {
	return b.v.GetDuration(apiTimeoutKey)
}

// GetInsecureSkipVerify allows the self-signed certificate of a local dev backend
func (b Backend) GetInsecureSkipVerify() bool {
	return b.v.GetBool(apiInsecureKey)
}
