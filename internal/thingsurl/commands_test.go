package thingsurl

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u.Query()
}

func TestAddTodo(t *testing.T) {
	got, err := AddTodo(AddTodoInput{
		Title:     "Call Mom",
		Notes:     strPtr("about the weekend"),
		Schedule:  Schedule{When: "evening", WhenDate: "2026-01-01"},
		Tags:      strPtr("family,phone"),
		Checklist: strPtr("dial, talk\nhang up"),
		Status:    Status{Reveal: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "things:///add?title=Call%20Mom&") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	q := mustQuery(t, got)
	if q.Get("when") != "evening" {
		t.Fatalf("expected when=evening, got %q", q.Get("when"))
	}
	if q.Get("checklist-items") != "dial\ntalk\nhang up" {
		t.Fatalf("unexpected checklist %q", q.Get("checklist-items"))
	}
	if q.Get("reveal") != "true" {
		t.Fatalf("expected reveal=true, got %q", q.Get("reveal"))
	}
	for _, key := range []string{"completed", "canceled", "deadline", "list", "heading"} {
		if _, ok := q[key]; ok {
			t.Fatalf("expected %s to be absent in %q", key, got)
		}
	}
}

func TestAddTodoRequiresTitle(t *testing.T) {
	if _, err := AddTodo(AddTodoInput{Title: "  "}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestAddProjectTodos(t *testing.T) {
	got, err := AddProject(AddProjectInput{Title: "Move", Area: strPtr("Home"), Todos: strPtr("pack,ship")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := mustQuery(t, got)
	if q.Get("to-dos") != "pack\nship" || q.Get("area") != "Home" {
		t.Fatalf("unexpected query: %q", got)
	}
	if !strings.HasPrefix(got, "things:///add-project?") {
		t.Fatalf("unexpected command: %q", got)
	}
}

func TestUpdateRequiresToken(t *testing.T) {
	_, err := Builder{}.UpdateTodo(UpdateTodoInput{ID: "abc"})
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	_, err = Builder{}.UpdateProject(UpdateProjectInput{ID: "abc"})
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestUpdateDryRunWithoutToken(t *testing.T) {
	got, err := Builder{DryRun: true}.UpdateTodo(UpdateTodoInput{ID: "abc", Title: strPtr("New")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "things:///update?id=abc&title=New" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestUpdateWithToken(t *testing.T) {
	got, err := Builder{AuthToken: "secret"}.UpdateTodo(UpdateTodoInput{
		ID:              "abc",
		Schedule:        Schedule{Deadline: strPtr("")},
		AppendChecklist: strPtr("x,y"),
		Duplicate:       true,
		Status:          Status{Completed: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := mustQuery(t, got)
	if q.Get("auth-token") != "secret" {
		t.Fatalf("expected auth-token, got %q", got)
	}
	if v, ok := q["deadline"]; !ok || v[0] != "" {
		t.Fatalf("expected empty deadline to clear, got %q", got)
	}
	if q.Get("append-checklist-items") != "x\ny" || q.Get("duplicate") != "true" || q.Get("completed") != "true" {
		t.Fatalf("unexpected query %q", got)
	}
}

func TestUpdateRequiresID(t *testing.T) {
	if _, err := (Builder{AuthToken: "t"}).UpdateProject(UpdateProjectInput{}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestShow(t *testing.T) {
	got, err := Show(ShowInput{ListID: "Today", CustomID: "xyz", Filter: "work"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "things:///show?id=today&filter=work" {
		t.Fatalf("unexpected url %q", got)
	}
	got, err = Show(ShowInput{CustomID: "xyz", Query: "Errands"})
	if err != nil || got != "things:///show?id=xyz&query=Errands" {
		t.Fatalf("unexpected url %q (%v)", got, err)
	}
	if _, err := Show(ShowInput{ListID: "nowhere"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestSearchAndVersion(t *testing.T) {
	if got := Search("two words"); got != "things:///search?query=two%20words" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := Search(""); got != "things:///search" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := Version(); got != "things:///version" {
		t.Fatalf("unexpected url %q", got)
	}
}
