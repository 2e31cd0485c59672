// Package prefs handles postdeck user preferences persistence.
// Preferences are stored in ~/.config/postdeck/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for postdeck.
type Prefs struct {
	Theme    string `toml:"theme"`
	Locale   string `toml:"locale"`
	PageSize int    `toml:"page_size"`
	Sort     string `toml:"sort"`
}

const (
	defaultPrefsPath = "~/.config/postdeck/prefs.toml"
	defaultTheme     = "Dracula"
	defaultLocale    = "en"
	defaultPageSize  = 10
	defaultSort      = "id"
	maxPageSize      = 100
)

// Default returns the preferences used when nothing is stored.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, Locale: defaultLocale, PageSize: defaultPageSize, Sort: defaultSort}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// normalize fills blank or out-of-range fields with defaults.
func (p Prefs) normalize() Prefs {
	d := Default()
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = d.Theme
	}
	if strings.TrimSpace(p.Locale) == "" {
		p.Locale = d.Locale
	}
	if p.PageSize < 1 || p.PageSize > maxPageSize {
		p.PageSize = d.PageSize
	}
	if strings.TrimSpace(p.Sort) == "" {
		p.Sort = d.Sort
	}
	return p
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}

	prefs := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Default(), nil // Graceful degradation
	}

	return prefs.normalize(), nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file.
	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}

	return nil
}

// Store is the single process-wide entry point for preferences. Every
// change goes through Update, which applies it and writes the file under one
// lock. Concurrent writers are serialized; the last one wins.
type Store struct {
	mu    sync.Mutex
	path  string
	prefs Prefs
}

// Open loads preferences from path into a new Store.
func Open(path string) *Store {
	p, _ := Load(path)
	return &Store{path: path, prefs: p}
}

// Get returns the current preferences.
func (s *Store) Get() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update applies fn to a copy of the current preferences and persists the
// result. The in-memory value changes even when the write fails so the
// session keeps the user's choice.
func (s *Store) Update(fn func(*Prefs)) (Prefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	fn(&next)
	next = next.normalize()
	s.prefs = next

	if err := Save(s.path, next); err != nil {
		return next, err
	}
	return next, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
