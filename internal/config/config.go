// Package config loads settings from defaults, an optional YAML file,
// environment variables and command-line flags.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmynk/bmitracker/internal/trend"
)

// EnvPrefix is prepended to every environment variable, e.g. BMI_DATABASE_PATH.
const EnvPrefix = "BMI"

// Settings is the complete runtime configuration.
type Settings struct {
	Database DatabaseSettings `mapstructure:"database"`
	Server   ServerSettings   `mapstructure:"server"`
	Log      LogSettings      `mapstructure:"log"`
	Auth     AuthSettings     `mapstructure:"auth"`
	Trend    TrendSettings    `mapstructure:"trend"`
}

type DatabaseSettings struct {
	// Path of the SQLite file, relative to the working directory.
	Path string `mapstructure:"path"`
}

type ServerSettings struct {
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// AuthSettings protects SaveRecord when PasswordHash is set.
type AuthSettings struct {
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type TrendSettings struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Width    int           `mapstructure:"width"`
	Height   int           `mapstructure:"height"`
}

// AuthEnabled reports whether an operator password is configured.
func (s *Settings) AuthEnabled() bool {
	return s.Auth.PasswordHash != ""
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "bmi_data.db")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("trend.cache_ttl", 5*time.Minute)
	v.SetDefault("trend.width", 640)
	v.SetDefault("trend.height", 400)
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by earlier deployments.
	_ = v.BindEnv("database.path", "BMI_DATABASE_PATH", "DB_PATH")
	_ = v.BindEnv("log.level", "BMI_LOG_LEVEL", "LOG_LEVEL")

	return v
}

// Load reads configFile (if non-empty) or a bmi.yaml in the working
// directory (if present), then unmarshals and validates the result.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("bmi")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		slog.Debug("Config file loaded", "path", v.ConfigFileUsed())
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if settings.AuthEnabled() && settings.Auth.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		settings.Auth.JWTSecret = secret
		slog.Warn("auth.jwt_secret not set; using a random secret, tokens will not survive a restart")
	}

	return settings, nil
}

// Validate checks value ranges.
func Validate(s *Settings) error {
	var errs []error
	if s.Database.Path == "" {
		errs = append(errs, errors.New("database.path must not be empty"))
	}
	if s.Server.Port < 1 || s.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", s.Server.Port))
	}
	if _, err := ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if s.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if s.Trend.CacheTTL <= 0 {
		errs = append(errs, errors.New("trend.cache_ttl must be positive"))
	}
	if s.Trend.Width < trend.MinWidth || s.Trend.Height < trend.MinHeight {
		errs = append(errs, fmt.Errorf("trend size %dx%d is too small", s.Trend.Width, s.Trend.Height))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
