// Package config defines the application's configuration structure and the
// logic for loading it from environment variables and config files.
package config
