// Package ui provides the terminal dashboard for postdeck.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program styled after k9s. Model is a value type;
// shared state that must survive Model copies (collections, lifecycles,
// mutation controllers, the toast center) is held by pointer.
//
// # Screens
//
//   - Posts: paged, searchable list with author filter and sort
//   - Users: paged, searchable list
//   - Post: post body, author and paged comments
//   - User: profile and the user's posts
//   - Logs: tail of the JSON log file
//
// Screens form a history stack. Back pops it, Home clears it.
//
// # Loading
//
// Every screen resource has a fetch.Lifecycle. A load command carries the
// ticket from Start and the result is applied through Resolve, so results
// for a screen the user already left are dropped.
//
// # Writes
//
// Creates are optimistic and return immediately. Updates and deletes run as
// commands and change the list only after the API confirms. Each outcome
// shows one toast; toasts expire on the UI tick.
//
// # Overlays
//
// Keys go to the first active layer: help, form, confirm dialog, search
// input, then the screen, then global bindings. Ctrl+C always quits.
//
// # Localization
//
// Every visible string comes from the i18n catalog. Arabic switches the
// layout to right-to-left: rows and status bars are mirrored and toasts move
// to the bottom-left corner.
package ui
