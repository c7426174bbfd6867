package jxa

import (
	"embed"
	"fmt"
)

//go:embed scripts/*.js
var scriptFS embed.FS

const helpersScript = "task_record.js"

// script returns the named script with the shared record helpers prepended.
func script(name string) (string, error) {
	helpers, err := scriptFS.ReadFile("scripts/" + helpersScript)
	if err != nil {
		return "", err
	}
	body, err := scriptFS.ReadFile("scripts/" + name)
	if err != nil {
		return "", fmt.Errorf("unknown script %q: %w", name, err)
	}
	return string(helpers) + "\n" + string(body), nil
}
