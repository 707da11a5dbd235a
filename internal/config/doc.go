// Package config loads server settings from defaults, an optional
// config.yaml and TASKBOARD_* environment variables, and validates them.
package config
