// Package config loads foreman's connection and logging settings.
//
// # Resolution order
//
//  1. Built-in defaults (Default)
//  2. ~/.config/foreman/config.toml, or the path passed to Load
//  3. A .env file in the working directory, loaded into the environment
//  4. FOREMAN_* environment variables
//
// A missing config file is not an error. Empty values in the file keep the
// default. The merged result is validated before it is returned.
//
// # TOML Format
//
//	api_base = "https://factory.example.com"
//	company_id = "acme"
//	api_token = "..."
//	log_file = "~/.local/share/foreman/foreman.log"
//	log_level = "info"
//	save_concurrency = 6
//	request_timeout_seconds = 10
//
// Tilde expansion is applied to the config path and log_file.
package config
