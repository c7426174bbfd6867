package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amirbrooks/things-cli/internal/store"
	"github.com/amirbrooks/things-cli/internal/thingsurl"
)

// builder warns when no token is configured; the live request then fails
// in the builder itself.
func (a *App) builder(dry bool) thingsurl.Builder {
	if strings.TrimSpace(a.cfg.Token) == "" {
		a.printer.Warnf("THINGS_TOKEN environment variable not set")
		a.printer.Warnf("Commands requiring authentication will fail")
	}
	return thingsurl.Builder{AuthToken: a.cfg.Token, DryRun: dry}
}

func (a *App) send(ctx context.Context, url string, dry bool) error {
	return a.dispatch.Dispatch(ctx, url, dry)
}

func (a *App) addCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new to-do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			url, err := thingsurl.AddTodo(thingsurl.AddTodoInput{
				Title:     flagString(fs, "title"),
				Notes:     optString(fs, "notes"),
				Schedule:  scheduleFrom(fs),
				Tags:      optString(fs, "tags"),
				Checklist: optString(fs, "checklist"),
				List:      optString(fs, "list"),
				ListID:    optString(fs, "list-id"),
				Heading:   optString(fs, "heading"),
				HeadingID: optString(fs, "heading-id"),
				Status:    statusFrom(fs),
				Dates:     datesFrom(fs),
			})
			if err != nil {
				return err
			}
			return a.send(cmd.Context(), url, dryRun(fs))
		},
	}
	fs := cmd.Flags()
	fs.StringP("title", "t", "", "Title of the to-do")
	fs.StringP("notes", "n", "", "Notes (max 10,000 chars)")
	addScheduleFlags(fs)
	fs.String("tags", "", "Comma-separated tags (must already exist)")
	fs.StringP("checklist", "c", "", "Checklist items, comma or newline separated")
	fs.StringP("list", "l", "", "Project or area name")
	fs.String("list-id", "", "Project or area ID")
	fs.String("heading", "", "Heading name within the project")
	fs.String("heading-id", "", "Heading ID within the project")
	addStatusFlags(fs, "to-do")
	addDateFlags(fs)
	addDryRunFlag(fs)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *App) addProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-project",
		Short: "Create a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			url, err := thingsurl.AddProject(thingsurl.AddProjectInput{
				Title:    flagString(fs, "title"),
				Notes:    optString(fs, "notes"),
				Schedule: scheduleFrom(fs),
				Tags:     optString(fs, "tags"),
				Area:     optString(fs, "area"),
				AreaID:   optString(fs, "area-id"),
				Todos:    optString(fs, "todos"),
				Status:   statusFrom(fs),
				Dates:    datesFrom(fs),
			})
			if err != nil {
				return err
			}
			return a.send(cmd.Context(), url, dryRun(fs))
		},
	}
	fs := cmd.Flags()
	fs.StringP("title", "t", "", "Title of the project")
	fs.StringP("notes", "n", "", "Notes")
	addScheduleFlags(fs)
	fs.String("tags", "", "Comma-separated tags")
	fs.StringP("area", "a", "", "Area name")
	fs.String("area-id", "", "Area ID")
	fs.String("todos", "", "To-dos to create inside the project, comma or newline separated")
	addStatusFlags(fs, "project")
	addDateFlags(fs)
	addDryRunFlag(fs)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *App) updateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing to-do (requires THINGS_TOKEN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			b := a.builder(dryRun(fs))
			url, err := b.UpdateTodo(thingsurl.UpdateTodoInput{
				ID:               flagString(fs, "id"),
				Title:            optString(fs, "title"),
				Notes:            optString(fs, "notes"),
				PrependNotes:     optString(fs, "prepend-notes"),
				AppendNotes:      optString(fs, "append-notes"),
				Schedule:         scheduleFrom(fs),
				Tags:             optString(fs, "tags"),
				AddTags:          optString(fs, "add-tags"),
				Checklist:        optString(fs, "checklist"),
				PrependChecklist: optString(fs, "prepend-checklist"),
				AppendChecklist:  optString(fs, "append-checklist"),
				List:             optString(fs, "list"),
				ListID:           optString(fs, "list-id"),
				Heading:          optString(fs, "heading"),
				HeadingID:        optString(fs, "heading-id"),
				Status:           statusFrom(fs),
				Duplicate:        flagBool(fs, "duplicate"),
				Dates:            datesFrom(fs),
			})
			if err != nil {
				return err
			}
			return a.send(cmd.Context(), url, dryRun(fs))
		},
	}
	fs := cmd.Flags()
	fs.String("id", "", "To-do ID")
	fs.StringP("title", "t", "", "New title")
	fs.StringP("notes", "n", "", "Replace notes")
	fs.String("prepend-notes", "", "Prepend to notes")
	fs.String("append-notes", "", "Append to notes")
	addScheduleFlags(fs)
	fs.String("tags", "", "Replace tags (comma-separated)")
	fs.String("add-tags", "", "Add tags (comma-separated)")
	fs.String("checklist", "", "Replace checklist items")
	fs.String("prepend-checklist", "", "Prepend checklist items")
	fs.String("append-checklist", "", "Append checklist items")
	fs.String("list", "", "Move to project or area")
	fs.String("list-id", "", "Move to project or area ID")
	fs.String("heading", "", "Move to heading")
	fs.String("heading-id", "", "Move to heading ID")
	addStatusFlags(fs, "to-do")
	fs.Bool("duplicate", false, "Duplicate before updating")
	addDateFlags(fs)
	addDryRunFlag(fs)
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *App) updateProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-project",
		Short: "Update an existing project (requires THINGS_TOKEN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			b := a.builder(dryRun(fs))
			url, err := b.UpdateProject(thingsurl.UpdateProjectInput{
				ID:           flagString(fs, "id"),
				Title:        optString(fs, "title"),
				Notes:        optString(fs, "notes"),
				PrependNotes: optString(fs, "prepend-notes"),
				AppendNotes:  optString(fs, "append-notes"),
				Schedule:     scheduleFrom(fs),
				Tags:         optString(fs, "tags"),
				AddTags:      optString(fs, "add-tags"),
				Area:         optString(fs, "area"),
				AreaID:       optString(fs, "area-id"),
				Status:       statusFrom(fs),
				Duplicate:    flagBool(fs, "duplicate"),
				Dates:        datesFrom(fs),
			})
			if err != nil {
				return err
			}
			return a.send(cmd.Context(), url, dryRun(fs))
		},
	}
	fs := cmd.Flags()
	fs.String("id", "", "Project ID")
	fs.StringP("title", "t", "", "New title")
	fs.StringP("notes", "n", "", "Replace notes")
	fs.String("prepend-notes", "", "Prepend to notes")
	fs.String("append-notes", "", "Append to notes")
	addScheduleFlags(fs)
	fs.String("tags", "", "Replace tags (comma-separated)")
	fs.String("add-tags", "", "Add tags (comma-separated)")
	fs.String("area", "", "Move to area")
	fs.String("area-id", "", "Move to area ID")
	addStatusFlags(fs, "project")
	fs.Bool("duplicate", false, "Duplicate before updating")
	addDateFlags(fs)
	addDryRunFlag(fs)
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *App) showCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Navigate to a list, item or tag in Things",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			url, err := thingsurl.Show(thingsurl.ShowInput{
				ListID:   flagString(fs, "id"),
				CustomID: flagString(fs, "custom-id"),
				Query:    flagString(fs, "query"),
				Filter:   flagString(fs, "filter"),
			})
			if err != nil {
				return err
			}
			return a.send(cmd.Context(), url, dryRun(fs))
		},
	}
	fs := cmd.Flags()
	fs.String("id", "", "Built-in list: "+strings.Join(thingsurl.BuiltInLists, "|"))
	fs.String("custom-id", "", "Item, project, area or tag ID")
	fs.String("query", "", "Search by name (quick find)")
	fs.StringP("filter", "f", "", "Filter by tags (comma-separated)")
	addDryRunFlag(fs)
	return cmd
}

func (a *App) searchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Open the Things search with an optional query",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			query := flagString(fs, "query")
			if query == "" {
				query = strings.Join(args, " ")
			}
			return a.send(cmd.Context(), thingsurl.Search(query), dryRun(fs))
		},
	}
	cmd.Flags().String("query", "", "Search query")
	addDryRunFlag(cmd.Flags())
	return cmd
}

func (a *App) versionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Ask Things to show its version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.send(cmd.Context(), thingsurl.Version(), dryRun(cmd.Flags())); err != nil {
				return err
			}
			a.printer.Notef("Note: Version info will be shown in Things app")
			return nil
		},
	}
	addDryRunFlag(cmd.Flags())
	return cmd
}

func (a *App) jsonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Send a batch of to-dos and projects as JSON (requires THINGS_TOKEN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			var data []byte
			switch {
			case flagString(fs, "file") != "":
				b, err := store.LoadBatch(flagString(fs, "file"))
				if err != nil {
					return err
				}
				data = b
			case flagString(fs, "data") != "":
				data = []byte(flagString(fs, "data"))
			default:
				return fmt.Errorf("%w: either --data or --file must be provided", thingsurl.ErrInvalid)
			}
			return a.sendBatch(cmd.Context(), fs, data)
		},
	}
	fs := cmd.Flags()
	fs.StringP("data", "d", "", "JSON array as a string")
	fs.StringP("file", "f", "", "Path to a JSON or YAML file")
	fs.BoolP("reveal", "r", false, "Show the items after creation")
	addDryRunFlag(fs)
	return cmd
}

func (a *App) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import to-dos and projects from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := store.LoadBatch(args[0])
			if err != nil {
				return err
			}
			return a.sendBatch(cmd.Context(), cmd.Flags(), data)
		},
	}
	cmd.Flags().BoolP("reveal", "r", false, "Show the items after import")
	addDryRunFlag(cmd.Flags())
	return cmd
}

func (a *App) sendBatch(ctx context.Context, fs *pflag.FlagSet, data []byte) error {
	dry := dryRun(fs)
	url, err := a.builder(dry).JSONData(data, flagBool(fs, "reveal"))
	if err != nil {
		return err
	}
	return a.send(ctx, url, dry)
}

func (a *App) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a JSON template for the json and import commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.WriteTemplate(args[0], flagString(cmd.Flags(), "type"))
			if err != nil {
				return err
			}
			a.printer.Successf("Template exported to %s", path)
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", store.TemplateTask, "Template type: "+strings.Join(store.TemplateTypes(), ", "))
	return cmd
}
