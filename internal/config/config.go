package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "TASKFLOW"
	configFileVar = "TASKFLOW_CONFIG"
	dotEnvFileVar = "TASKFLOW_DOTENV"
)

type Config interface {
	EnvConfig
	BackendConfig
	SessionConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetBaseURL() string
}

type mainConfig struct {
	EnvVars
	Backend
	Session
	Security
}

// New loads the optional .env file, the optional YAML config file named by
// TASKFLOW_CONFIG and then the TASKFLOW_* environment.
func New() (Config, error) {
	if err := loadDotEnv(GetEnv(dotEnvFileVar, ".env")); err != nil {
		return nil, err
	}

	v := viper.New()
	if path := os.Getenv(configFileVar); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("[config New] read %s: %w", path, err)
		}
	}
	return FromViper(v), nil
}

// FromViper wires defaults and environment overrides onto v.
func FromViper(v *viper.Viper) Config {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return mainConfig{
		EnvVars:  EnvVars{v: v},
		Backend:  Backend{v: v},
		Session:  Session{v: v},
		Security: Security{v: v},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)

	v.SetDefault(portKey, "8080")
	v.SetDefault(appNameKey, "TaskFlow")
	v.SetDefault(envKey, "DEV")
	v.SetDefault(logLevelKey, "info")
	v.SetDefault(baseURLKey, "http://localhost:8080")

	v.SetDefault(apiBaseURLKey, "https://localhost:7071/api")
	v.SetDefault(apiTimeoutKey, 15*time.Second)
	v.SetDefault(apiInsecureKey, false)

	v.SetDefault(sessionStoreKey, StoreCookie)
	v.SetDefault(sessionTokenKey, "token")
	v.SetDefault(sessionCookieKey, "taskflow")
	v.SetDefault(sessionRoleClaimKey, DefaultRoleClaim)
	v.SetDefault(redisAddrKey, "localhost:6379")
	v.SetDefault(redisPasswordKey, "")
	v.SetDefault(redisDBKey, 0)

	v.SetDefault(sessionSecretKey, "")
	v.SetDefault(sessionMaxAgeKey, 12*time.Hour)
	v.SetDefault(cookieSecureKey, false)
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("[config loadDotEnv] stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("[config loadDotEnv] %s: %w", path, err)
	}
	return nil
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
