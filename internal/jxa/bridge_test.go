package jxa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type call struct {
	script string
	args   []string
}

// fakeRunner answers by script file marker.
type fakeRunner struct {
	calls   []call
	outputs map[string]string
	err     error
}

func (f *fakeRunner) Run(ctx context.Context, script string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{script: script, args: args})
	if f.err != nil {
		return nil, f.err
	}
	for marker, out := range f.outputs {
		if strings.Contains(script, marker) {
			return []byte(out), nil
		}
	}
	return nil, errors.New("no fake output")
}

type recordingWarner struct{ msgs []string }

func (w *recordingWarner) Warnf(format string, args ...any) {
	w.msgs = append(w.msgs, fmt.Sprintf(format, args...))
}

const germanLists = `["Eingang","Heute","Geplant","Jederzeit","Irgendwann","Logbuch"]`

func TestListTasksUsesDetectedLabel(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"things.lists();\n    const result": germanLists,
		`findByName(things.lists()`:        `[{"id":"1","name":"Milk","status":"open","notes":"","tagNames":"","dueDate":null,"creationDate":"Mon"}]`,
	}}
	b := New(r, Options{Locale: "auto"})
	tasks, err := b.ListTasks(context.Background(), "tomorrow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "Milk" || tasks[0].DueDate != nil || *tasks[0].CreationDate != "Mon" {
		t.Fatalf("unexpected tasks %#v", tasks)
	}
	last := r.calls[len(r.calls)-1]
	if len(last.args) != 2 || last.args[0] != DefaultApp || last.args[1] != "Morgen" {
		t.Fatalf("expected argv [Things3 Morgen], got %q", last.args)
	}
	if _, err := b.ListTasks(context.Background(), "today"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.calls) != 3 {
		t.Fatalf("expected locale detection to run once, got %d calls", len(r.calls))
	}
}

func TestListTasksStaticLocaleSkipsDetection(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{`findByName(things.lists()`: `[]`}}
	b := New(r, Options{Locale: "en", App: "Things3 Beta"})
	if _, err := b.ListTasks(context.Background(), "upcoming"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.calls) != 1 || r.calls[0].args[0] != "Things3 Beta" || r.calls[0].args[1] != "Upcoming" {
		t.Fatalf("unexpected calls %#v", r.calls)
	}
}

func TestDetectionFailureWarnsAndFallsBack(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"things.lists();\n    const result": `{"not":"a list"}`,
		`findByName(things.lists()`:        `[]`,
	}}
	w := &recordingWarner{}
	b := New(r, Options{Warner: w})
	if _, err := b.ListTasks(context.Background(), "inbox"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 || !strings.Contains(w.msgs[0], "auto-detect") {
		t.Fatalf("expected one detection warning, got %q", w.msgs)
	}
	if got := r.calls[len(r.calls)-1].args[1]; got != "Eingang" {
		t.Fatalf("expected fallback label Eingang, got %q", got)
	}
}

func TestNamesPassOutOfBand(t *testing.T) {
	name := `Bob's "quoted" project"); doShellScript("rm -rf ~`
	r := &fakeRunner{outputs: map[string]string{`findByName(things.projects()`: `[]`}}
	b := New(r, Options{})
	if _, err := b.TasksByProject(context.Background(), name); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := r.calls[0]
	if strings.Contains(c.script, name) {
		t.Fatalf("expected name to stay out of the script body")
	}
	if c.args[1] != name {
		t.Fatalf("expected raw name as argv, got %q", c.args[1])
	}
}

func TestMetadataQueries(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"things.tags()":      `["work","home"]`,
		"things.areas();":    `[{"name":"Personal","taskCount":3}]`,
		"things.projects();": `[{"id":"p1","name":"Move","status":"open","notes":"","taskCount":2,"dueDate":null}]`,
	}}
	b := New(r, Options{Locale: "auto"})
	ctx := context.Background()
	tags, err := b.Tags(ctx)
	if err != nil || len(tags) != 2 {
		t.Fatalf("unexpected tags %v (%v)", tags, err)
	}
	areas, err := b.Areas(ctx)
	if err != nil || areas[0].TaskCount != 3 {
		t.Fatalf("unexpected areas %v (%v)", areas, err)
	}
	projects, err := b.Projects(ctx)
	if err != nil || projects[0].ID != "p1" {
		t.Fatalf("unexpected projects %v (%v)", projects, err)
	}
	if len(r.calls) != 3 {
		t.Fatalf("expected metadata queries to skip locale detection, got %d calls", len(r.calls))
	}
}

func TestParseFailure(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{"things.toDos()": `not json`}}
	_, err := New(r, Options{}).AllTasks(context.Background())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestUnavailableBridge(t *testing.T) {
	b := Open(Options{Interpreter: "definitely-not-osascript-xyz"})
	if b.Available() {
		t.Fatalf("expected bridge to be unavailable")
	}
	if _, err := b.Tags(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, err := b.ListTasks(context.Background(), "today"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestEveryScriptIsEmbedded(t *testing.T) {
	for _, name := range []string{"list_names.js", "list_tasks.js", "all_tasks.js", "tasks_by_tag.js", "tasks_by_area.js", "tasks_by_project.js", "tags.js", "areas.js", "projects.js"} {
		src, err := script(name)
		if err != nil {
			t.Fatalf("script %s: %v", name, err)
		}
		if !strings.Contains(src, "function run(argv)") {
			t.Fatalf("script %s has no run handler", name)
		}
	}
}
