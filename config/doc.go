// Package config handles application configuration loading and validation.
//
// Configuration is read from geotag.yml, overridden by GEOTAG_* environment
// variables (a .env file is honoured) and validated using struct tags.
// Command-line flags take precedence over everything loaded here.
package config
