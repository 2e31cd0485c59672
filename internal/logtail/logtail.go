package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Event is one decoded JSON log record.
type Event struct {
	Time      time.Time
	Level     string
	Message   string
	Component string
	Attrs     []Attr
}

// Attr is a key/value pair carried by an Event besides the standard fields.
type Attr struct {
	Key   string
	Value string
}

// Parse decodes a slog JSON line. ok is false for lines that are not JSON
// objects.
func Parse(line string) (Event, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Event{}, false
	}

	var evt Event
	if ts, ok := raw[slog.TimeKey].(string); ok {
		evt.Time, _ = time.Parse(time.RFC3339Nano, ts)
	}
	evt.Level, _ = raw[slog.LevelKey].(string)
	evt.Message, _ = raw[slog.MessageKey].(string)
	evt.Component, _ = raw["component"].(string)

	for k, v := range raw {
		switch k {
		case slog.TimeKey, slog.LevelKey, slog.MessageKey, "component":
			continue
		}
		evt.Attrs = append(evt.Attrs, Attr{Key: k, Value: fmt.Sprint(v)})
	}
	slices.SortFunc(evt.Attrs, func(a, b Attr) int { return strings.Compare(a.Key, b.Key) })
	return evt, true
}

// Format renders an Event as a header line followed by indented attributes:
//
//	2025-12-13 05:11:12 WARN [mutation] – remote delete failed
//	    - id: 5
func Format(evt Event) string {
	ts := ""
	if !evt.Time.IsZero() {
		ts = evt.Time.In(time.Local).Format("2006-01-02 15:04:05")
	}
	level := strings.ToUpper(strings.TrimSpace(evt.Level))
	if level == "" {
		level = "INFO"
	}

	parts := make([]string, 0, 3)
	if ts != "" {
		parts = append(parts, ts)
	}
	parts = append(parts, level)
	if component := strings.TrimSpace(evt.Component); component != "" {
		parts = append(parts, "["+component+"]")
	}
	header := strings.Join(parts, " ")
	if msg := strings.TrimSpace(evt.Message); msg != "" {
		header += " – " + msg
	}
	if len(evt.Attrs) == 0 {
		return header
	}

	var b strings.Builder
	b.WriteString(header)
	for _, a := range evt.Attrs {
		if strings.TrimSpace(a.Value) == "" {
			continue
		}
		b.WriteString("\n    - ")
		b.WriteString(a.Key)
		b.WriteString(": ")
		b.WriteString(a.Value)
	}
	return b.String()
}

// FormatLine formats a raw log line, passing non-JSON lines through.
func FormatLine(line string) string {
	evt, ok := Parse(line)
	if !ok {
		return line
	}
	return Format(evt)
}

// AtLeast reports whether line is a JSON record at or above min. Lines
// that are not JSON always pass.
func AtLeast(line string, min slog.Level) bool {
	evt, ok := Parse(line)
	if !ok {
		return true
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(evt.Level)); err != nil {
		return true
	}
	return lvl >= min
}
