// Package config loads, normalizes, and validates the director TOML
// configuration file.
package config
