// Package config manages user-level settings stored at ~/.create-app/config.yaml.
// Values can be overridden with CREATE_APP_* environment variables, which may
// also be supplied through ~/.create-app/.env.
package config
