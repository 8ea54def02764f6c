// Package config loads the wistia CLI configuration file.
//
// # Overview
//
// The CLI reads an optional TOML file for its access token, API endpoints,
// HTTP timeout and logging settings. A missing file is not an error; the
// defaults point at the public Wistia APIs.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/wistia/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. Empty fields keep their defaults
//
// # TOML Format
//
//	access_token = "..."
//	api_url = "https://api.wistia.com"
//	upload_url = "https://upload.wistia.com"
//	timeout_seconds = 60
//	log_level = "warn"
//	log_format = "console"
//
// All fields are optional. timeout_seconds = 0 (the default) means no
// timeout, matching the library's own default client.
//
// # Access Token
//
// Token checks access_token first and then the WISTIA_API_TOKEN environment
// variable. LoadDotenv can populate the environment from .env files before
// that lookup; variables already present in the environment are not
// overwritten.
package config
