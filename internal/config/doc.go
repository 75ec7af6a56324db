// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, an optional config file, environment
// variables and command-line flags). It provides type-safe access to the
// worksheet, rendering and server settings while keeping configuration
// details separate from generation logic.
package config
