package thingsurl

import (
	"fmt"
	"strings"
)

// When values understood by the scheme.
const (
	WhenToday    = "today"
	WhenTomorrow = "tomorrow"
	WhenEvening  = "evening"
	WhenAnytime  = "anytime"
	WhenSomeday  = "someday"
)

var whenValues = []string{WhenToday, WhenTomorrow, WhenEvening, WhenAnytime, WhenSomeday}

// BuiltInLists are the ids accepted by show --id.
var BuiltInLists = []string{
	"inbox", "today", "anytime", "upcoming", "someday", "logbook", "tomorrow",
	"deadlines", "repeating", "all-projects", "logged-projects",
}

func WhenValues() []string { return append([]string(nil), whenValues...) }

// SplitItems splits comma or newline separated text into trimmed, non-empty items.
func SplitItems(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, ",", "\n")
	var out []string
	for _, part := range strings.Split(s, "\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// SplitAll re-splits already split items; for split output it returns the same sequence.
func SplitAll(items []string) []string {
	return SplitItems(strings.Join(items, "\n"))
}

// ResolveWhen picks the symbolic value over the literal date.
func ResolveWhen(when, date string) (Value, error) {
	when = strings.ToLower(strings.TrimSpace(when))
	if when != "" {
		if !containsString(whenValues, when) {
			return Absent, fmt.Errorf("%w: unknown when value %q (use %s)", ErrInvalid, when, strings.Join(whenValues, "|"))
		}
		return String(when), nil
	}
	if date = strings.TrimSpace(date); date != "" {
		return String(date), nil
	}
	return Absent, nil
}

func IsBuiltInList(id string) bool {
	return containsString(BuiltInLists, strings.ToLower(strings.TrimSpace(id)))
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func listValue(s *string) Value {
	if s == nil {
		return Absent
	}
	return List(SplitItems(*s))
}
