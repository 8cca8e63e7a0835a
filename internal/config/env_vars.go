package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	portKey     = "port"
	appNameKey  = "app_name"
	envKey      = "env"
	logLevelKey = "log_level"
	baseURLKey  = "base_url"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.v.GetString(portKey)
	if port == "" {
		port = "8080"
	}
	if port[0] != ':' && !strings.Contains(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(appNameKey)
}

// GetEnv returns DEV, TEST or PROD
func (e EnvVars) GetEnv() string {
	env := strings.ToUpper(e.v.GetString(envKey))
	if env == "" {
		return "DEV"
	}
	return env
}

func (e EnvVars) GetLogLevel() string {
	return e.v.GetString(logLevelKey)
}

// GetBaseURL returns the public URL of this web front-end (e.g. "https://taskflow.example.com")
func (e EnvVars) GetBaseURL() string {
	return strings.TrimRight(e.v.GetString(baseURLKey), "/")
}
