package repl

import (
	"io"
	"sort"
	"strings"

	"github.com/Dicklesworthstone/replkit/internal/output"
	"github.com/Dicklesworthstone/replkit/internal/theme"
)

// ParameterSummary is the read-only view of a Parameter shown in help.
type ParameterSummary struct {
	Name     string  `json:"name" yaml:"name"`
	Required bool    `json:"required" yaml:"required"`
	Default  *string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Usage renders the parameter the same way Parameter.Usage does.
func (p ParameterSummary) Usage() string {
	switch {
	case p.Required:
		return "<" + p.Name + ">"
	case p.Default != nil:
		return "[" + p.Name + "=" + *p.Default + "]"
	default:
		return "[" + p.Name + "]"
	}
}

// HelpEntry describes one command in the help snapshot.
type HelpEntry struct {
	Command    string             `json:"command" yaml:"command"`
	Parameters []ParameterSummary `json:"parameters" yaml:"parameters"`
	Summary    string             `json:"summary" yaml:"summary"`
}

// Usage renders "command <req> [opt]".
func (e HelpEntry) Usage() string {
	parts := []string{e.Command}
	for _, p := range e.Parameters {
		parts = append(parts, p.Usage())
	}
	return strings.Join(parts, " ")
}

// HelpContext is a snapshot of the registry taken before the session loop
// starts. Entries are sorted by command name.
type HelpContext struct {
	AppName     string      `json:"name" yaml:"name"`
	Version     string      `json:"version" yaml:"version"`
	Description string      `json:"description" yaml:"description"`
	Entries     []HelpEntry `json:"commands" yaml:"commands"`
}

// Lookup finds the entry for a command name.
func (h *HelpContext) Lookup(command string) (*HelpEntry, bool) {
	for i := range h.Entries {
		if h.Entries[i].Command == command {
			return &h.Entries[i], true
		}
	}
	return nil, false
}

// BuildHelpContext snapshots reg.
func BuildHelpContext[C any](name, version, description string, reg *Registry[C]) *HelpContext {
	entries := make([]HelpEntry, 0, reg.Len())
	for _, cmd := range reg.commands {
		entries = append(entries, newHelpEntry(cmd))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Command < entries[j].Command
	})
	return &HelpContext{
		AppName:     name,
		Version:     version,
		Description: description,
		Entries:     entries,
	}
}

func newHelpEntry[C any](cmd Command[C]) HelpEntry {
	params := make([]ParameterSummary, 0, len(cmd.params))
	for _, p := range cmd.params {
		ps := ParameterSummary{Name: p.name, Required: p.required}
		if p.hasDefault {
			def := p.defaultVal
			ps.Default = &def
		}
		params = append(params, ps)
	}
	return HelpEntry{Command: cmd.name, Parameters: params, Summary: cmd.help}
}

// HelpViewer presents the help snapshot to the user.
type HelpViewer interface {
	HelpGeneral(ctx *HelpContext) error
	HelpCommand(entry *HelpEntry) error
}

// DefaultHelpViewer prints help as styled plain text.
type DefaultHelpViewer struct {
	out   io.Writer
	width int
	theme theme.Theme
}

// NewDefaultHelpViewer creates a viewer writing to w, wrapping at width
// columns (theme.DefaultWidth when width <= 0).
func NewDefaultHelpViewer(w io.Writer, width int) *DefaultHelpViewer {
	if width <= 0 {
		width = theme.DefaultWidth
	}
	return &DefaultHelpViewer{out: w, width: width, theme: theme.Current()}
}

// HelpGeneral lists every command with its summary.
func (v *DefaultHelpViewer) HelpGeneral(ctx *HelpContext) error {
	f := output.NewFormatter(v.out)
	title := strings.TrimSpace(ctx.AppName + " " + ctx.Version)
	if title != "" {
		f.Textln("%s", v.theme.Title.Render(title))
	}
	if ctx.Description != "" {
		f.Paragraph(ctx.Description, v.width, 0)
	}
	if title != "" || ctx.Description != "" {
		f.Line()
	}

	f.Textln("%s", v.theme.Heading.Render("COMMANDS"))
	tbl := output.NewTable(v.out)
	tbl.StyleColumn(0, func(s string) string { return v.theme.Command.Render(s) })
	for _, e := range ctx.Entries {
		tbl.AddRow(e.Command, output.Truncate(e.Summary, v.width-24))
	}
	if _, shadowed := ctx.Lookup("help"); !shadowed {
		tbl.AddRow("help", "Show this list, or help for one command")
	}
	tbl.Render()
	f.Line()
	f.Textln("%s", v.theme.Muted.Render("Type 'help <command>' for details."))
	return nil
}

// HelpCommand shows the usage line, parameters and summary of one command.
func (v *DefaultHelpViewer) HelpCommand(entry *HelpEntry) error {
	f := output.NewFormatter(v.out)
	f.Textln("%s", v.theme.Title.Render(entry.Command))
	if entry.Summary != "" {
		f.Paragraph(entry.Summary, v.width, 2)
	}
	f.Line()
	f.Textln("%s", v.theme.Heading.Render("USAGE"))
	f.Textln("  %s", entry.Usage())

	if len(entry.Parameters) == 0 {
		return nil
	}
	f.Line()
	f.Textln("%s", v.theme.Heading.Render("PARAMETERS"))
	tbl := output.NewTable(v.out)
	tbl.StyleColumn(0, func(s string) string { return v.theme.Param.Render(s) })
	for _, p := range entry.Parameters {
		switch {
		case p.Required:
			tbl.AddRow(p.Name, "required")
		case p.Default != nil:
			tbl.AddRow(p.Name, "optional, default "+*p.Default)
		default:
			tbl.AddRow(p.Name, "optional")
		}
	}
	tbl.Render()
	return nil
}
