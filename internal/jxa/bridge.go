// Package jxa reads from Things 3 through JavaScript for Automation.
// It is read-only; writes go through the URL scheme.
package jxa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amirbrooks/things-cli/internal/locale"
	"github.com/amirbrooks/things-cli/internal/log"
)

const DefaultApp = "Things3"

// Views are the built-in lists a task query can target.
var Views = []string{"inbox", "today", "tomorrow", "anytime", "upcoming", "someday", "logbook"}

// Warner receives non-fatal problems such as a failed locale detection.
type Warner interface {
	Warnf(format string, args ...any)
}

type Options struct {
	App         string
	Interpreter string
	Timeout     time.Duration
	Locale      string
	Logger      log.Logger
	Warner      Warner
}

// Bridge is the read capability. When the interpreter is missing the bridge
// still exists but every query returns the lookup error.
type Bridge struct {
	runner      Runner
	unavailable error
	app         string
	localeCode  string
	names       locale.Map
	logger      log.Logger
	warner      Warner
}

// Open looks the interpreter up once.
func Open(opts Options) *Bridge {
	runner, err := LookupOsaRunner(opts.Interpreter, opts.Timeout, opts.Logger)
	if err != nil {
		b := New(nil, opts)
		b.unavailable = err
		return b
	}
	return New(runner, opts)
}

// New builds a bridge around an explicit runner.
func New(r Runner, opts Options) *Bridge {
	app := strings.TrimSpace(opts.App)
	if app == "" {
		app = DefaultApp
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &Bridge{
		runner:     r,
		app:        app,
		localeCode: opts.Locale,
		logger:     logger,
		warner:     opts.Warner,
	}
}

func (b *Bridge) Available() bool { return b.unavailable == nil && b.runner != nil }

func (b *Bridge) check() error {
	if b.unavailable != nil {
		return b.unavailable
	}
	if b.runner == nil {
		return ErrUnsupported
	}
	return nil
}

// SetLocale overrides the configured locale hint and drops any cached map.
func (b *Bridge) SetLocale(code string) {
	b.localeCode = code
	b.names = nil
}

func (b *Bridge) query(ctx context.Context, name string, out any, args ...string) error {
	if err := b.check(); err != nil {
		return err
	}
	src, err := script(name)
	if err != nil {
		return err
	}
	raw, err := b.runner.Run(ctx, src, append([]string{b.app}, args...)...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

// ListNames returns the host's list names in display order. It satisfies
// locale.Detector.
func (b *Bridge) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := b.query(ctx, "list_names.js", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// LocaleMap resolves the built-in list labels once per bridge.
func (b *Bridge) LocaleMap(ctx context.Context) locale.Map {
	if b.names != nil {
		return b.names
	}
	m, err := locale.Resolve(ctx, b.localeCode, b)
	if err != nil {
		b.logger.Warnf(ctx, "locale: %v", err)
		if b.warner != nil {
			b.warner.Warnf("%v", err)
		}
	}
	b.logger.Debugf(ctx, "locale map: %v", m)
	b.names = m
	return m
}

func IsView(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range Views {
		if v == name {
			return true
		}
	}
	return false
}

// ListTasks returns the to-dos of a built-in list, matched by its localized label.
func (b *Bridge) ListTasks(ctx context.Context, view string) ([]Task, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	label := b.LocaleMap(ctx).Lookup(view)
	var tasks []Task
	if err := b.query(ctx, "list_tasks.js", &tasks, label); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (b *Bridge) AllTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := b.query(ctx, "all_tasks.js", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (b *Bridge) TasksByTag(ctx context.Context, tag string) ([]Task, error) {
	var tasks []Task
	if err := b.query(ctx, "tasks_by_tag.js", &tasks, tag); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (b *Bridge) TasksByArea(ctx context.Context, area string) ([]Task, error) {
	var tasks []Task
	if err := b.query(ctx, "tasks_by_area.js", &tasks, area); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (b *Bridge) TasksByProject(ctx context.Context, project string) ([]Task, error) {
	var tasks []Task
	if err := b.query(ctx, "tasks_by_project.js", &tasks, project); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (b *Bridge) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := b.query(ctx, "tags.js", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (b *Bridge) Areas(ctx context.Context) ([]Area, error) {
	var areas []Area
	if err := b.query(ctx, "areas.js", &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func (b *Bridge) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := b.query(ctx, "projects.js", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
