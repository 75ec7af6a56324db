package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Worksheet WorksheetConfig `mapstructure:"worksheet" validate:"required"`
	Render    RenderConfig    `mapstructure:"render" validate:"required"`
}

// ServerConfig contains the HTTP server and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// WorksheetConfig controls problem generation.
type WorksheetConfig struct {
	// Digits is the maximum number of digits of any operand.
	Digits int `mapstructure:"digits" validate:"required,min=1,max=9"`
	// Operations are operation tokens (names, aliases or symbols).
	// Unknown tokens are passed through to the worksheet unchanged.
	Operations          []string `mapstructure:"operations" validate:"required,min=1,dive,required"`
	LimitMultiplication bool     `mapstructure:"limit_multiplication"`
	// Seed makes generation reproducible. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// RenderConfig controls document rendering and compilation.
type RenderConfig struct {
	// TemplatePath overrides the built-in LaTeX template.
	TemplatePath   string        `mapstructure:"template_path" validate:"omitempty,file"`
	OutputDir      string        `mapstructure:"output_dir" validate:"required"`
	OutputName     string        `mapstructure:"output_name" validate:"required,excludesall=/\\"`
	Compiler       string        `mapstructure:"compiler" validate:"required"`
	CompileTimeout time.Duration `mapstructure:"compile_timeout" validate:"gte=0"`
	Compile        bool          `mapstructure:"compile"`
	AnswerKey      bool          `mapstructure:"answer_key"`
}
