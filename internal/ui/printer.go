// Package ui is the console output sink shared by every command.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Printer writes results to Out and diagnostics to Err.
// Colour is decided per writer, so redirected output stays plain.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool

	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	accent  lipgloss.Style
}

func New(out, errOut io.Writer, noColor bool) *Printer {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	p := &Printer{
		Out:     out,
		Err:     errOut,
		success: outR.NewStyle().Foreground(lipgloss.Color("2")),
		accent:  outR.NewStyle().Foreground(lipgloss.Color("6")),
		warn:    errR.NewStyle().Foreground(lipgloss.Color("3")),
		fail:    errR.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
	if noColor {
		p.success, p.accent, p.warn, p.fail = lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
	}
	return p
}

func (p *Printer) Successf(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, p.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Infof(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, fmt.Sprintf(format, args...))
}

// Notef is for hints about what happens outside this process.
func (p *Printer) Notef(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Err, p.warn.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.Err, p.warn.Render("Warning: "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.Err, p.fail.Render("Error: "+fmt.Sprintf(format, args...)))
}

// WouldExecute prints a dry-run request. The URL itself is never styled.
func (p *Printer) WouldExecute(url string) {
	fmt.Fprintln(p.Out, p.accent.Render("Would execute:")+" "+url)
}

func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (p *Printer) YAML(v any) error {
	enc := yaml.NewEncoder(p.Out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Table writes a header row and rows through a tabwriter.
func (p *Printer) Table(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(p.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	return w.Flush()
}
