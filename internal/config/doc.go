// Package config loads postdeck's TOML configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/postdeck/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Default Values
//
//   - API base URL: https://jsonplaceholder.typicode.com
//   - Request timeout: 10s (set "0s" to disable)
//   - Retry attempts for idempotent reads: 3
//   - Rate limit: 10 requests/second
//   - Log file: ~/.local/state/postdeck/postdeck.log
//
// # TOML Format
//
//	api_base_url = "https://jsonplaceholder.typicode.com"
//	request_timeout = "10s"
//	retry_attempts = 3
//	rate_limit = 10
//	log_file = "~/.local/state/postdeck/postdeck.log"
//	log_level = "info"
//
//	[email]
//	service_id = "service_xxx"
//	template_id = "template_xxx"
//	public_key = "pk_xxx"
//	from_name = "postdeck"
//
// The [email] table is optional. Without service_id, template_id and
// public_key the share action reports that email is not configured.
//
// Missing config files are NOT an error. postdeck works against the public
// demo API without any configuration.
package config
