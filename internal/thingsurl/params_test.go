package thingsurl

import (
	"net/url"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestBuildWithoutParams(t *testing.T) {
	if got := Build("version", nil); got != "things:///version" {
		t.Fatalf("expected bare url, got %q", got)
	}
	if got := Build("search", NewParams().Set("query", Absent)); got != "things:///search" {
		t.Fatalf("expected absent-only params to drop the query, got %q", got)
	}
}

func TestEncodeSpacesAsPercent20(t *testing.T) {
	got := Build("add", NewParams().Set("title", String("Buy milk and eggs")))
	if strings.Contains(got, "+") {
		t.Fatalf("expected no '+' in %q", got)
	}
	if got != "things:///add?title=Buy%20milk%20and%20eggs" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestEncodeEscapesReservedCharacters(t *testing.T) {
	got := NewParams().Set("notes", String("a+b&c=d/e?f:g@h#i,j;k$l")).Encode()
	want := "notes=a%2Bb%26c%3Dd%2Fe%3Ff%3Ag%40h%23i%2Cj%3Bk%24l"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEncodeValueKinds(t *testing.T) {
	p := NewParams().
		Set("title", String("x")).
		Set("reveal", Bool(true)).
		Set("completed", Bool(false)).
		Set("checklist-items", List([]string{"one", "two"}))
	got := p.Encode()
	want := "title=x&reveal=true&completed=false&checklist-items=one%0Atwo"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAbsentAndFalseFlagsAreDropped(t *testing.T) {
	p := NewParams().
		Set("title", String("t")).
		Set("notes", OptString(nil)).
		Set("completed", Flag(false)).
		Set("canceled", Flag(false)).
		Set("reveal", Flag(false)).
		Set("tags", List(nil))
	if p.Len() != 1 {
		t.Fatalf("expected 1 present param, got %d", p.Len())
	}
	q := p.Encode()
	for _, key := range []string{"notes", "completed", "canceled", "reveal", "tags"} {
		if strings.Contains(q, key) {
			t.Fatalf("expected %s to be dropped from %q", key, q)
		}
	}
}

func TestOptStringKeepsExplicitEmpty(t *testing.T) {
	got := NewParams().Set("deadline", OptString(strPtr(""))).Encode()
	if got != "deadline=" {
		t.Fatalf("expected empty deadline to be sent, got %q", got)
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	p := NewParams().Set("a", String("1")).Set("b", String("2")).Set("a", String("3"))
	if got := p.Encode(); got != "a=3&b=2" {
		t.Fatalf("expected order preserved, got %q", got)
	}
}

func TestEncodedQueryDecodesBack(t *testing.T) {
	in := "Zeile 1\nZeile 2 & ümlaut"
	u, err := url.Parse(Build("add", NewParams().Set("notes", String(in))))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := u.Query().Get("notes"); got != in {
		t.Fatalf("expected %q, got %q", in, got)
	}
}
