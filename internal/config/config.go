// Package config manages configuration for the contactform services.
// It uses Viper to read environment variables and validator to enforce required values.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the process-wide settings. It is read once at start-up and
// never mutated afterwards.
type Config struct {
	// TableName is the DynamoDB table receiving submissions.
	TableName string `mapstructure:"table_name" validate:"required"`
	// AdminEmail receives the new-submission notice.
	AdminEmail string `mapstructure:"admin_email" validate:"required"`
	// SenderEmail is the fixed source address of both emails. Defaults to AdminEmail.
	SenderEmail string `mapstructure:"sender_email"`

	EmailProvider constants.EmailProvider `mapstructure:"email_provider" validate:"oneof=ses resend log"`
	ResendAPIKey  string                  `mapstructure:"resend_api_key" validate:"required_if=EmailProvider resend"`
	LambdaAdapter constants.LambdaAdapter `mapstructure:"lambda_adapter" validate:"oneof=proxy router"`

	LogLevel       string        `mapstructure:"log_level"`
	InitTimeout    time.Duration `mapstructure:"init_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Port           string        `mapstructure:"port"`
}

var validate = validator.New()

// envBindings maps configuration keys to the environment variables they are
// read from, in order of precedence. TABLE_NAME and SES_ADMIN_EMAIL are the
// names used by existing deployments.
var envBindings = map[string][]string{
	"table_name":      {"TABLE_NAME"},
	"admin_email":     {"ADMIN_EMAIL", "SES_ADMIN_EMAIL"},
	"sender_email":    {"SENDER_EMAIL"},
	"email_provider":  {"EMAIL_PROVIDER"},
	"resend_api_key":  {"RESEND_API_KEY"},
	"lambda_adapter":  {"LAMBDA_ADAPTER"},
	"log_level":       {"LOG_LEVEL"},
	"init_timeout":    {"INIT_TIMEOUT"},
	"request_timeout": {"REQUEST_TIMEOUT"},
	"port":            {"DEV_SERVER_PORT"},
}

// unprefixed lists the legacy variable names that are also accepted without the prefix.
var unprefixed = map[string]bool{
	"TABLE_NAME":      true,
	"SES_ADMIN_EMAIL": true,
}

// Load reads the configuration from environment variables and validates it.
// Environment variables use the CONTACTFORM_ prefix.
func Load() (*Config, error) {
	return LoadWithDefaults(nil)
}

// LoadWithDefaults is Load with extra fallback values keyed like the
// mapstructure tags (e.g. "table_name"). Environment variables still win.
func LoadWithDefaults(defaults map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.EmailProvider = constants.NormalizeEmailProvider(string(cfg.EmailProvider))
	cfg.LambdaAdapter = constants.NormalizeLambdaAdapter(string(cfg.LambdaAdapter))
	cfg.TableName = strings.TrimSpace(cfg.TableName)
	cfg.AdminEmail = strings.TrimSpace(cfg.AdminEmail)
	cfg.SenderEmail = strings.TrimSpace(cfg.SenderEmail)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", describeValidationError(err))
	}

	if cfg.SenderEmail == "" {
		cfg.SenderEmail = cfg.AdminEmail
	}

	return &cfg, nil
}

// MustLoad loads configuration and exits on error.
// Suitable for application startup where configuration errors should be fatal.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// GetLogLevel returns the slog.Level from the string configuration.
// Defaults to INFO if the level string is invalid.
func (c *Config) GetLogLevel() slog.Level {
	return logger.ParseLevel(c.LogLevel)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("email_provider", string(constants.EmailProviderSES))
	v.SetDefault("lambda_adapter", string(constants.LambdaAdapterProxy))
	v.SetDefault("log_level", "INFO")
	v.SetDefault("init_timeout", "10s")
	v.SetDefault("request_timeout", 0)
	v.SetDefault("port", constants.DevServerPort)
}

func bindEnvVars(v *viper.Viper) {
	for key, names := range envBindings {
		envs := make([]string, 0, len(names)*2)
		for _, name := range names {
			envs = append(envs, constants.EnvPrefix+"_"+name)
		}
		for _, name := range names {
			if unprefixed[name] {
				envs = append(envs, name)
			}
		}
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// describeValidationError turns validator errors into one readable line per field.
func describeValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s cannot be empty", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
