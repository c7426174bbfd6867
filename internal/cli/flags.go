package cli

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"

	"github.com/amirbrooks/things-cli/internal/thingsurl"
)

var ErrUsage = errors.New("usage")

// optString distinguishes a flag set to "" from a flag never given.
func optString(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetString(name)
	return &v
}

func flagString(fs *pflag.FlagSet, name string) string {
	v, _ := fs.GetString(name)
	return v
}

func flagBool(fs *pflag.FlagSet, name string) bool {
	v, _ := fs.GetBool(name)
	return v
}

func addScheduleFlags(fs *pflag.FlagSet) {
	fs.StringP("when", "w", "", "When to schedule: "+strings.Join(thingsurl.WhenValues(), "|"))
	fs.String("when-date", "", "Custom date (yyyy-mm-dd), ignored when --when is set")
	fs.StringP("deadline", "d", "", "Deadline date (empty string clears it on update)")
}

func scheduleFrom(fs *pflag.FlagSet) thingsurl.Schedule {
	return thingsurl.Schedule{
		When:     flagString(fs, "when"),
		WhenDate: flagString(fs, "when-date"),
		Deadline: optString(fs, "deadline"),
	}
}

func addStatusFlags(fs *pflag.FlagSet, noun string) {
	fs.Bool("completed", false, "Mark as completed")
	fs.Bool("canceled", false, "Mark as canceled")
	fs.BoolP("reveal", "r", false, "Show the "+noun+" in Things afterwards")
}

func statusFrom(fs *pflag.FlagSet) thingsurl.Status {
	return thingsurl.Status{
		Completed: flagBool(fs, "completed"),
		Canceled:  flagBool(fs, "canceled"),
		Reveal:    flagBool(fs, "reveal"),
	}
}

func addDateFlags(fs *pflag.FlagSet) {
	fs.String("creation-date", "", "Creation date (ISO8601)")
	fs.String("completion-date", "", "Completion date (ISO8601)")
}

func datesFrom(fs *pflag.FlagSet) thingsurl.Dates {
	return thingsurl.Dates{
		CreationDate:   optString(fs, "creation-date"),
		CompletionDate: optString(fs, "completion-date"),
	}
}

func addDryRunFlag(fs *pflag.FlagSet) {
	fs.Bool("dry-run", false, "Print the URL instead of opening it")
}

func dryRun(fs *pflag.FlagSet) bool {
	return flagBool(fs, "dry-run")
}
