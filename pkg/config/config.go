// Package config loads gateway settings from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dasmlab/glosa/pkg/translate"
)

// EnvPrefix is prepended to every environment variable, e.g. GLOSA_PORT.
const EnvPrefix = "GLOSA"

// Config holds every runtime setting.
type Config struct {
	Host            string        `mapstructure:"host" json:"host"`
	Port            int           `mapstructure:"port" json:"port"`
	Debug           bool          `mapstructure:"debug" json:"debug"`
	LogLevel        string        `mapstructure:"log_level" json:"log_level"`
	LogFormat       string        `mapstructure:"log_format" json:"log_format"`
	Engine          string        `mapstructure:"engine" json:"engine"`
	EngineURL       string        `mapstructure:"engine_url" json:"engine_url"`
	EngineAPIKey    string        `mapstructure:"engine_api_key" json:"engine_api_key"`
	EngineTimeout   time.Duration `mapstructure:"engine_timeout" json:"engine_timeout"`
	Credentials     string        `mapstructure:"google_credentials" json:"google_credentials"`
	GRPCHealthPort  int           `mapstructure:"grpc_health_port" json:"grpc_health_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 5000)
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("engine", string(translate.EngineGTranslate))
	v.SetDefault("engine_url", "")
	v.SetDefault("engine_api_key", "")
	v.SetDefault("engine_timeout", 30*time.Second)
	v.SetDefault("google_credentials", "")
	v.SetDefault("grpc_health_port", 0)
	v.SetDefault("shutdown_timeout", 30*time.Second)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in fs to the viper key of the same name with
// dashes turned into underscores.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// Load reads the optional config file and decodes the merged settings.
// An empty path searches for glosa.yaml in the working directory and
// /etc/glosa; a missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("glosa")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/glosa")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Min(0), validation.Max(65535)),
		validation.Field(&c.GRPCHealthPort, validation.Min(0), validation.Max(65535)),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.LogLevel, validation.By(func(value interface{}) error {
			_, err := logrus.ParseLevel(value.(string))
			return err
		})),
		validation.Field(&c.Engine, validation.Required, validation.By(func(value interface{}) error {
			_, err := translate.ParseEngineType(value.(string))
			return err
		})),
	)
}

// EngineType returns the parsed engine. Validate has already accepted it.
func (c Config) EngineType() translate.EngineType {
	engine, _ := translate.ParseEngineType(c.Engine)
	return engine
}

// TranslatorConfig maps the settings onto a translator factory config.
func (c Config) TranslatorConfig(logger *logrus.Logger) translate.Config {
	return translate.Config{
		Engine:          c.EngineType(),
		BaseURL:         c.EngineURL,
		APIKey:          c.EngineAPIKey,
		CredentialsFile: c.Credentials,
		Timeout:         c.EngineTimeout,
		Logger:          logger,
	}
}

// NewLogger builds the process logger. Debug mode forces debug level.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if c.Debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}
