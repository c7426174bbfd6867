package thingsurl

import (
	"fmt"
	"strings"
)

// Command names accepted by the things:/// scheme.
const (
	CmdAdd           = "add"
	CmdAddProject    = "add-project"
	CmdUpdate        = "update"
	CmdUpdateProject = "update-project"
	CmdShow          = "show"
	CmdSearch        = "search"
	CmdVersion       = "version"
	CmdJSON          = "json"
)

// Schedule is the shared when/deadline block of every create or update command.
type Schedule struct {
	When     string
	WhenDate string
	Deadline *string
}

// Status holds the assert-only flags.
type Status struct {
	Completed bool
	Canceled  bool
	Reveal    bool
}

type Dates struct {
	CreationDate   *string
	CompletionDate *string
}

type AddTodoInput struct {
	Title     string
	Notes     *string
	Schedule  Schedule
	Tags      *string
	Checklist *string
	List      *string
	ListID    *string
	Heading   *string
	HeadingID *string
	Status    Status
	Dates     Dates
}

type AddProjectInput struct {
	Title    string
	Notes    *string
	Schedule Schedule
	Tags     *string
	Area     *string
	AreaID   *string
	Todos    *string
	Status   Status
	Dates    Dates
}

type UpdateTodoInput struct {
	ID               string
	Title            *string
	Notes            *string
	PrependNotes     *string
	AppendNotes      *string
	Schedule         Schedule
	Tags             *string
	AddTags          *string
	Checklist        *string
	PrependChecklist *string
	AppendChecklist  *string
	List             *string
	ListID           *string
	Heading          *string
	HeadingID        *string
	Status           Status
	Duplicate        bool
	Dates            Dates
}

type UpdateProjectInput struct {
	ID           string
	Title        *string
	Notes        *string
	PrependNotes *string
	AppendNotes  *string
	Schedule     Schedule
	Tags         *string
	AddTags      *string
	Area         *string
	AreaID       *string
	Status       Status
	Duplicate    bool
	Dates        Dates
}

type ShowInput struct {
	ListID   string
	CustomID string
	Query    string
	Filter   string
}

// Builder carries what mutating commands need beyond their own input.
type Builder struct {
	AuthToken string
	DryRun    bool
}

func (b Builder) requireAuth(command string) error {
	if strings.TrimSpace(b.AuthToken) == "" && !b.DryRun {
		return fmt.Errorf("%w: THINGS_TOKEN is required for %s", ErrAuthRequired, command)
	}
	return nil
}

func (b Builder) authValue() Value {
	if strings.TrimSpace(b.AuthToken) == "" {
		return Absent
	}
	return String(b.AuthToken)
}

func requireText(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalid, name)
	}
	return nil
}

func (s Schedule) apply(p *Params) error {
	when, err := ResolveWhen(s.When, s.WhenDate)
	if err != nil {
		return err
	}
	p.Set("when", when)
	p.Set("deadline", OptString(s.Deadline))
	return nil
}

func (s Status) apply(p *Params) {
	p.Set("completed", Flag(s.Completed))
	p.Set("canceled", Flag(s.Canceled))
}

func (d Dates) apply(p *Params) {
	p.Set("creation-date", OptString(d.CreationDate))
	p.Set("completion-date", OptString(d.CompletionDate))
}

func AddTodo(in AddTodoInput) (string, error) {
	if err := requireText("title", in.Title); err != nil {
		return "", err
	}
	p := NewParams()
	p.Set("title", String(in.Title))
	p.Set("notes", OptString(in.Notes))
	if err := in.Schedule.apply(p); err != nil {
		return "", err
	}
	p.Set("tags", OptString(in.Tags))
	p.Set("checklist-items", listValue(in.Checklist))
	p.Set("list", OptString(in.List))
	p.Set("list-id", OptString(in.ListID))
	p.Set("heading", OptString(in.Heading))
	p.Set("heading-id", OptString(in.HeadingID))
	in.Status.apply(p)
	p.Set("reveal", Flag(in.Status.Reveal))
	in.Dates.apply(p)
	return Build(CmdAdd, p), nil
}

func AddProject(in AddProjectInput) (string, error) {
	if err := requireText("title", in.Title); err != nil {
		return "", err
	}
	p := NewParams()
	p.Set("title", String(in.Title))
	p.Set("notes", OptString(in.Notes))
	if err := in.Schedule.apply(p); err != nil {
		return "", err
	}
	p.Set("tags", OptString(in.Tags))
	p.Set("area", OptString(in.Area))
	p.Set("area-id", OptString(in.AreaID))
	p.Set("to-dos", listValue(in.Todos))
	in.Status.apply(p)
	p.Set("reveal", Flag(in.Status.Reveal))
	in.Dates.apply(p)
	return Build(CmdAddProject, p), nil
}

func (b Builder) UpdateTodo(in UpdateTodoInput) (string, error) {
	if err := b.requireAuth(CmdUpdate); err != nil {
		return "", err
	}
	if err := requireText("id", in.ID); err != nil {
		return "", err
	}
	p := NewParams()
	p.Set("id", String(in.ID))
	p.Set("auth-token", b.authValue())
	p.Set("title", OptString(in.Title))
	p.Set("notes", OptString(in.Notes))
	p.Set("prepend-notes", OptString(in.PrependNotes))
	p.Set("append-notes", OptString(in.AppendNotes))
	if err := in.Schedule.apply(p); err != nil {
		return "", err
	}
	p.Set("tags", OptString(in.Tags))
	p.Set("add-tags", OptString(in.AddTags))
	p.Set("checklist-items", listValue(in.Checklist))
	p.Set("prepend-checklist-items", listValue(in.PrependChecklist))
	p.Set("append-checklist-items", listValue(in.AppendChecklist))
	p.Set("list", OptString(in.List))
	p.Set("list-id", OptString(in.ListID))
	p.Set("heading", OptString(in.Heading))
	p.Set("heading-id", OptString(in.HeadingID))
	in.Status.apply(p)
	p.Set("duplicate", Flag(in.Duplicate))
	p.Set("reveal", Flag(in.Status.Reveal))
	in.Dates.apply(p)
	return Build(CmdUpdate, p), nil
}

func (b Builder) UpdateProject(in UpdateProjectInput) (string, error) {
	if err := b.requireAuth(CmdUpdateProject); err != nil {
		return "", err
	}
	if err := requireText("id", in.ID); err != nil {
		return "", err
	}
	p := NewParams()
	p.Set("id", String(in.ID))
	p.Set("auth-token", b.authValue())
	p.Set("title", OptString(in.Title))
	p.Set("notes", OptString(in.Notes))
	p.Set("prepend-notes", OptString(in.PrependNotes))
	p.Set("append-notes", OptString(in.AppendNotes))
	if err := in.Schedule.apply(p); err != nil {
		return "", err
	}
	p.Set("tags", OptString(in.Tags))
	p.Set("add-tags", OptString(in.AddTags))
	p.Set("area", OptString(in.Area))
	p.Set("area-id", OptString(in.AreaID))
	in.Status.apply(p)
	p.Set("duplicate", Flag(in.Duplicate))
	p.Set("reveal", Flag(in.Status.Reveal))
	in.Dates.apply(p)
	return Build(CmdUpdateProject, p), nil
}

// Show navigates to a built-in list or a custom id; the built-in list wins.
func Show(in ShowInput) (string, error) {
	id := ""
	if listID := strings.ToLower(strings.TrimSpace(in.ListID)); listID != "" {
		if !IsBuiltInList(listID) {
			return "", fmt.Errorf("%w: unknown list %q (use %s)", ErrInvalid, in.ListID, strings.Join(BuiltInLists, "|"))
		}
		id = listID
	} else if strings.TrimSpace(in.CustomID) != "" {
		id = strings.TrimSpace(in.CustomID)
	}
	p := NewParams()
	p.Set("id", nonEmpty(id))
	p.Set("query", nonEmpty(in.Query))
	p.Set("filter", nonEmpty(in.Filter))
	return Build(CmdShow, p), nil
}

func Search(query string) string {
	return Build(CmdSearch, NewParams().Set("query", nonEmpty(query)))
}

func Version() string {
	return Build(CmdVersion, nil)
}

func nonEmpty(s string) Value {
	if s == "" {
		return Absent
	}
	return String(s)
}
