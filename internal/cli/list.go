package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/things-cli/internal/jxa"
)

const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

const listHelp = `Please specify a view or filter:
  Views: today, tomorrow, inbox, upcoming, anytime, someday, logbook, all
  Metadata: tags, areas, projects
  Filters: --tag, --area, --project

Examples:
  things list today
  things list --tag work
  things list --area Personal
`

func (a *App) listCommand() *cobra.Command {
	var (
		tag, area, project string
		localeHint, format string
	)
	cmd := &cobra.Command{
		Use:   "list [view]",
		Short: "List to-dos and metadata from Things (read-only, macOS)",
		Long: `List reads from Things through osascript and prints JSON by default.

Views: today, tomorrow, inbox, upcoming, anytime, someday, logbook, all.
Metadata: tags, areas, projects. Without a view, one of --tag, --area or
--project selects the to-dos.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case FormatJSON, FormatYAML, FormatTable:
			default:
				return fmt.Errorf("%w: --format must be json, yaml or table", ErrUsage)
			}
			view := ""
			if len(args) == 1 {
				view = strings.ToLower(strings.TrimSpace(args[0]))
			}

			ctx := cmd.Context()
			b := a.readBridge()
			if cmd.Flags().Changed("locale") {
				b.SetLocale(localeHint)
			}

			switch view {
			case "tags":
				tags, err := b.Tags(ctx)
				if err != nil {
					return err
				}
				return a.renderTags(tags, format)
			case "areas":
				areas, err := b.Areas(ctx)
				if err != nil {
					return err
				}
				return a.renderAreas(areas, format)
			case "projects":
				projects, err := b.Projects(ctx)
				if err != nil {
					return err
				}
				return a.renderProjects(projects, format)
			}

			var (
				tasks []jxa.Task
				err   error
			)
			switch {
			case view == "all":
				tasks, err = b.AllTasks(ctx)
			case view != "" && jxa.IsView(view):
				tasks, err = b.ListTasks(ctx, view)
			case view != "":
				return fmt.Errorf("%w: unknown view %q", ErrUsage, args[0])
			case tag != "":
				tasks, err = b.TasksByTag(ctx, tag)
			case area != "":
				tasks, err = b.TasksByArea(ctx, area)
			case project != "":
				tasks, err = b.TasksByProject(ctx, project)
			default:
				fmt.Fprint(a.Err, listHelp)
				return fmt.Errorf("%w: no view or filter given", ErrUsage)
			}
			if err != nil {
				return err
			}
			return a.renderTasks(tasks, format)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&tag, "tag", "", "Filter by tag")
	fs.StringVar(&area, "area", "", "Filter by area")
	fs.StringVar(&project, "project", "", "Filter by project")
	fs.StringVar(&localeHint, "locale", "", "List-name locale: auto, de, en (default from config)")
	fs.StringVar(&format, "format", FormatJSON, "Output format: json, yaml or table")
	return cmd
}

func (a *App) render(v any, format string, header []string, rows [][]string) error {
	switch format {
	case FormatYAML:
		return a.printer.YAML(v)
	case FormatTable:
		return a.printer.Table(header, rows)
	default:
		return a.printer.JSON(v)
	}
}

func (a *App) renderTasks(tasks []jxa.Task, format string) error {
	if tasks == nil {
		tasks = []jxa.Task{}
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t.ID, t.Name, t.Status, deref(t.DueDate), t.TagNames})
	}
	return a.render(tasks, format, []string{"ID", "NAME", "STATUS", "DUE", "TAGS"}, rows)
}

func (a *App) renderTags(tags []string, format string) error {
	if tags == nil {
		tags = []string{}
	}
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{t})
	}
	return a.render(tags, format, []string{"TAG"}, rows)
}

func (a *App) renderAreas(areas []jxa.Area, format string) error {
	if areas == nil {
		areas = []jxa.Area{}
	}
	rows := make([][]string, 0, len(areas))
	for _, ar := range areas {
		rows = append(rows, []string{ar.Name, strconv.Itoa(ar.TaskCount)})
	}
	return a.render(areas, format, []string{"AREA", "TASKS"}, rows)
}

func (a *App) renderProjects(projects []jxa.Project, format string) error {
	if projects == nil {
		projects = []jxa.Project{}
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.ID, p.Name, p.Status, strconv.Itoa(p.TaskCount), deref(p.DueDate)})
	}
	return a.render(projects, format, []string{"ID", "NAME", "STATUS", "TASKS", "DUE"}, rows)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
