// Package config handles configuration loading and management for hitcurl.
//
// It provides functionality for:
//   - Loading configuration from .hitcurl.yaml, .hitcurl.yml, .hitcurl.json or .hitcurlrc
//   - Default configuration values
//   - Validation of loaded values
//   - Merging command-line overrides over file values
package config
