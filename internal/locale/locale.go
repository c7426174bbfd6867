// Package locale maps canonical built-in list keys to the labels the host
// application shows under its UI language.
package locale

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Key string

const (
	Inbox    Key = "inbox"
	Today    Key = "today"
	Tomorrow Key = "tomorrow"
	Anytime  Key = "anytime"
	Upcoming Key = "upcoming"
	Someday  Key = "someday"
	Logbook  Key = "logbook"
)

// Auto requests live detection.
const Auto = "auto"

// Fallback is used whenever detection cannot produce a table.
const Fallback = "de"

// Keys lists every canonical key, Tomorrow included.
var Keys = []Key{Inbox, Today, Tomorrow, Anytime, Upcoming, Someday, Logbook}

// detectedOrder is the positional order of the host's real lists.
// Tomorrow is a filter over Upcoming and has no position.
var detectedOrder = []Key{Inbox, Today, Upcoming, Anytime, Someday, Logbook}

type Map map[Key]string

var tables = map[string]Map{
	"de": {
		Inbox:    "Eingang",
		Today:    "Heute",
		Tomorrow: "Morgen",
		Anytime:  "Jederzeit",
		Upcoming: "Geplant",
		Someday:  "Irgendwann",
		Logbook:  "Logbuch",
	},
	"en": {
		Inbox:    "Inbox",
		Today:    "Today",
		Tomorrow: "Tomorrow",
		Anytime:  "Anytime",
		Upcoming: "Upcoming",
		Someday:  "Someday",
		Logbook:  "Logbook",
	},
}

var ErrDetect = errors.New("locale detection failed")

// DetectError reports a failed detection; the returned map is still usable.
type DetectError struct {
	Err error
}

func (e *DetectError) Error() string {
	return fmt.Sprintf("could not auto-detect locale, using %q: %v", Fallback, e.Err)
}

func (e *DetectError) Unwrap() error { return e.Err }

func (e *DetectError) Is(target error) bool { return target == ErrDetect }

// Detector returns the host's built-in list names in display order.
type Detector interface {
	ListNames(ctx context.Context) ([]string, error)
}

// Codes returns the locales with a static table.
func Codes() []string {
	out := make([]string, 0, len(tables))
	for code := range tables {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Table returns a copy of the static table for code.
func Table(code string) (Map, bool) {
	t, ok := tables[normalizeCode(code)]
	if !ok {
		return nil, false
	}
	return t.clone(), true
}

// Lookup returns the label for key, or the key itself when unmapped.
func (m Map) Lookup(name string) string {
	k := Key(strings.ToLower(strings.TrimSpace(name)))
	if v, ok := m[k]; ok && v != "" {
		return v
	}
	return name
}

func (m Map) clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func normalizeCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	// de_DE, de-AT, ...
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}

// Resolve returns the table for a known code and detects otherwise.
// A non-nil error is always a *DetectError and comes with the fallback table.
func Resolve(ctx context.Context, code string, d Detector) (Map, error) {
	code = normalizeCode(code)
	if code != "" && code != Auto {
		if t, ok := Table(code); ok {
			return t, nil
		}
	}
	return Detect(ctx, d)
}

func Detect(ctx context.Context, d Detector) (Map, error) {
	fallback, _ := Table(Fallback)
	if d == nil {
		return fallback, &DetectError{Err: errors.New("no detector available")}
	}
	names, err := d.ListNames(ctx)
	if err != nil {
		return fallback, &DetectError{Err: err}
	}
	m, err := FromNames(names)
	if err != nil {
		return fallback, &DetectError{Err: err}
	}
	return m, nil
}

// FromNames zips detected names onto the canonical keys and infers Tomorrow
// from the locale whose Inbox label matches.
func FromNames(names []string) (Map, error) {
	if len(names) < len(detectedOrder) {
		return nil, fmt.Errorf("expected at least %d list names, got %d", len(detectedOrder), len(names))
	}
	m := make(Map, len(Keys))
	for i, k := range detectedOrder {
		name := strings.TrimSpace(names[i])
		if name == "" {
			return nil, fmt.Errorf("empty list name at position %d", i)
		}
		m[k] = name
	}
	m[Tomorrow] = tables[Fallback][Tomorrow]
	for _, code := range Codes() {
		if tables[code][Inbox] == m[Inbox] {
			m[Tomorrow] = tables[code][Tomorrow]
			break
		}
	}
	return m, nil
}
