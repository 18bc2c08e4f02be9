// Package report prints the user-facing result lines of the parameter tools.
// Styles come from a lipgloss renderer bound to the output, so labels are only
// colored when the output is a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"openscope-params/internal/exporter"
	"openscope-params/internal/model"
	"openscope-params/internal/validate"
)

// Semantic colors.
var (
	Success     = lipgloss.Color("#8BC34A")
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
	Muted       = lipgloss.Color("#6b7280")
)

// Styles holds the label styles for one output.
type Styles struct {
	OK      lipgloss.Style
	Fail    lipgloss.Style
	Notice  lipgloss.Style
	Heading lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles builds styles for the given renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		OK:      r.NewStyle().Foreground(Success).Bold(true),
		Fail:    r.NewStyle().Foreground(Destructive).Bold(true),
		Notice:  r.NewStyle().Foreground(Warning),
		Heading: r.NewStyle().Bold(true),
		Dim:     r.NewStyle().Foreground(Muted),
	}
}

// Printer writes result lines to one writer.
type Printer struct {
	w      io.Writer
	styles Styles
}

// New returns a Printer for w.
func New(w io.Writer) *Printer {
	return &Printer{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Result prints "OK  <path>" or "FAIL <path>: <reason>".
func (p *Printer) Result(res validate.Result) {
	if res.Err == nil {
		fmt.Fprintf(p.w, "%s  %s\n", p.styles.OK.Render("OK"), res.Path)
		return
	}
	fmt.Fprintf(p.w, "%s %s: %v\n", p.styles.Fail.Render("FAIL"), res.Path, res.Err)
}

// NoPacks prints the notice for an empty batch.
func (p *Printer) NoPacks(root string) {
	fmt.Fprintf(p.w, "%s\n", p.styles.Notice.Render("No JSON pack files found under: "+root))
}

// Stale prints one schema file that is out of date on disk.
func (p *Printer) Stale(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.Fail.Render("STALE"), path)
}

// Models lists the registry, launcher first.
func (p *Printer) Models(reg *model.Registry) {
	models := reg.Modules()
	if launcher, ok := reg.Launcher(); ok {
		models = append([]model.Model{launcher}, models...)
	}
	width := 0
	for _, m := range models {
		width = max(width, len(m.Name))
	}
	for _, m := range models {
		fmt.Fprintf(p.w, "%-*s  %s\n", width, m.Name, p.styles.Dim.Render(exporter.Description(m)))
	}
}

// Describe prints how a pack's entries are interpreted.
func (p *Printer) Describe(path string, info validate.PackInfo) {
	fmt.Fprintln(p.w, p.styles.Heading.Render(path))
	schema := info.Schema
	if schema == "" {
		schema = "(none)"
	}
	fmt.Fprintf(p.w, "  $schema: %s\n", schema)
	if len(info.Extra) > 0 {
		fmt.Fprintf(p.w, "  extra keys: %s\n", strings.Join(info.Extra, ", "))
	}
	if info.Problem != "" {
		fmt.Fprintf(p.w, "  %s %s\n", p.styles.Fail.Render("problem:"), info.Problem)
	}
	for _, e := range info.Entries {
		fmt.Fprintf(p.w, "  %s[%d] %s %s", e.Pipeline, e.Index, e.Kind, e.Name)
		if e.ModuleType != "" {
			fmt.Fprintf(p.w, " (%s)", e.ModuleType)
		}
		if e.Model != "" {
			fmt.Fprintf(p.w, " -> %s", e.Model)
		}
		fmt.Fprintln(p.w)
		if len(e.Extra) > 0 {
			fmt.Fprintf(p.w, "    extra keys: %s\n", strings.Join(e.Extra, ", "))
		}
		if e.Problem != "" {
			fmt.Fprintf(p.w, "    %s %s\n", p.styles.Fail.Render("problem:"), e.Problem)
		}
	}
}
