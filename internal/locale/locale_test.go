package locale

import (
	"context"
	"errors"
	"testing"
)

type fakeDetector struct {
	names []string
	err   error
	calls int
}

func (f *fakeDetector) ListNames(ctx context.Context) ([]string, error) {
	f.calls++
	return f.names, f.err
}

func TestResolveStatic(t *testing.T) {
	d := &fakeDetector{}
	m, err := Resolve(context.Background(), "en_US", d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m[Tomorrow] != "Tomorrow" || d.calls != 0 {
		t.Fatalf("expected static en table without detection, got %v (calls=%d)", m, d.calls)
	}
}

func TestResolveDetectsGerman(t *testing.T) {
	d := &fakeDetector{names: []string{"Eingang", "Heute", "Geplant", "Jederzeit", "Irgendwann", "Logbuch"}}
	m, err := Resolve(context.Background(), Auto, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Map{
		Inbox:    "Eingang",
		Today:    "Heute",
		Upcoming: "Geplant",
		Anytime:  "Jederzeit",
		Someday:  "Irgendwann",
		Logbook:  "Logbuch",
		Tomorrow: "Morgen",
	}
	if len(m) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), m)
	}
	for k, v := range want {
		if m[k] != v {
			t.Fatalf("expected %s=%q, got %q", k, v, m[k])
		}
	}
}

func TestResolveUnknownCodeDetects(t *testing.T) {
	d := &fakeDetector{names: []string{"Inbox", "Today", "Upcoming", "Anytime", "Someday", "Logbook", "Work"}}
	m, err := Resolve(context.Background(), "xx", d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.calls != 1 || m[Tomorrow] != "Tomorrow" {
		t.Fatalf("expected detection with en tomorrow, got %v", m)
	}
}

func TestDetectUnknownInboxUsesFallbackTomorrow(t *testing.T) {
	m, err := FromNames([]string{"Boîte", "Aujourd'hui", "Prévu", "À tout moment", "Un jour", "Journal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m[Tomorrow] != "Morgen" || m[Inbox] != "Boîte" {
		t.Fatalf("unexpected map %v", m)
	}
}

func TestDetectFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		d    Detector
	}{
		{name: "detector error", d: &fakeDetector{err: errors.New("osascript failed")}},
		{name: "short output", d: &fakeDetector{names: []string{"Inbox"}}},
		{name: "no detector", d: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Resolve(context.Background(), "", tt.d)
			if !errors.Is(err, ErrDetect) {
				t.Fatalf("expected ErrDetect, got %v", err)
			}
			var de *DetectError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DetectError, got %T", err)
			}
			if m[Inbox] != "Eingang" || m[Tomorrow] != "Morgen" {
				t.Fatalf("expected fallback table, got %v", m)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	m, _ := Table("de")
	if got := m.Lookup("Today"); got != "Heute" {
		t.Fatalf("expected Heute, got %q", got)
	}
	if got := m.Lookup("Errands"); got != "Errands" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestTableIsACopy(t *testing.T) {
	m, _ := Table("en")
	m[Inbox] = "changed"
	again, _ := Table("en")
	if again[Inbox] != "Inbox" {
		t.Fatalf("expected static table to be unchanged, got %q", again[Inbox])
	}
}
