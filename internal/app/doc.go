// Package app is the composition root for postdeck.
//
// # Overview
//
// Bootstrap turns a config path into the collaborators every entry point
// needs: the parsed config, a JSON file logger, the rate-limited API client
// and the mail sender. The CLI commands use Bootstrap directly; Run adds the
// interactive pieces and starts the TUI.
//
// # Startup
//
//  1. Load ~/.config/postdeck/config.toml (defaults when missing)
//  2. Open the log file and install it as the slog default
//  3. Build the API client with retry, breaker and rate limit from config
//  4. Build the mail sender, or mail.Noop when credentials are absent
//  5. Open preferences and the translator for the saved locale
//  6. Start the health probe goroutine
//  7. Run the TUI until the user quits or the context is cancelled
//
// The API is not required to be reachable at startup. The dashboard shows
// its own failure view and the header reports the probe result.
//
// # Health Probe
//
// StartHealthProbe pings the API every 15 seconds with a single unretried
// request and records the outcome in state.Health. Consecutive failures
// double the wait up to 30 seconds. A probe cut short by cancellation is
// not recorded.
//
// # Errors
//
// Config, logging and client construction errors are fatal and returned
// from Bootstrap. Probe failures are logged at warn and never stop the app.
package app
