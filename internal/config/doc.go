// Package config defines the application configuration structure and
// loading logic. Configuration comes from environment variables (with
// the TODOAPI_ prefix) layered over an optional YAML file, and is
// validated before the application starts.
package config
