package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. MATHSHEET_WORKSHEET_DIGITS.
const EnvPrefix = "MATHSHEET"

// ConfigFileEnv names the environment variable holding an optional config file path.
const ConfigFileEnv = EnvPrefix + "_CONFIG"

var validate = validator.New()

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "text")

	v.SetDefault("worksheet.digits", 3)
	v.SetDefault("worksheet.operations", []string{"+", "-"})
	v.SetDefault("worksheet.limit_multiplication", true)
	v.SetDefault("worksheet.seed", 0)

	v.SetDefault("render.template_path", "")
	v.SetDefault("render.output_dir", ".")
	v.SetDefault("render.output_name", "worksheet")
	v.SetDefault("render.compiler", "pdflatex")
	v.SetDefault("render.compile_timeout", "60s")
	v.SetDefault("render.compile", true)
	v.SetDefault("render.answer_key", false)
}

// Load configuration from defaults, an optional config file and environment variables.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWith(viper.New(), os.Getenv(ConfigFileEnv))
}

// LoadWith loads configuration into v, which may already have command-line
// flags bound to it. Bound flags take precedence over environment variables.
// configFile is optional; a missing explicit file is an error.
func LoadWith(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("mathsheet")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Worksheet.Operations = splitOperations(cfg.Worksheet.Operations)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// splitOperations flattens comma-separated entries, which is how lists
// arrive from environment variables and string flags.
func splitOperations(tokens []string) []string {
	ops := make([]string, 0, len(tokens))
	for _, token := range tokens {
		for _, op := range strings.Split(token, ",") {
			if op = strings.TrimSpace(op); op != "" {
				ops = append(ops, op)
			}
		}
	}
	return ops
}
