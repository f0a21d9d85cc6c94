// Package config loads, normalizes, and validates discsift configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the DISCSIFT_LANGUAGE environment
// fallback for the preferred disc language. Detection thresholds live here so
// the CLI and the detection engine agree on a single source of truth.
package config
