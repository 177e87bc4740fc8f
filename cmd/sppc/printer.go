package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/colorstring"
	"github.com/rivo/uniseg"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/alusus/sppcore/internal/notice"
)

// NoticePrinter renders diagnostics for humans: one line per notice,
// severity-colored, truncated to the terminal width so long messages and
// deep prefix-location chains don't wrap mid-word.
type NoticePrinter struct {
	Out   io.Writer
	Width int

	colorize colorstring.Colorize
}

// NewNoticePrinter builds a printer for out. Color is forced off when out
// is not a terminal; Width is detected from the terminal when possible.
func NewNoticePrinter(out io.Writer, color bool) *NoticePrinter {
	width := 0
	isTTY := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		isTTY = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}
	return &NoticePrinter{
		Out:   out,
		Width: width,
		colorize: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !color || !isTTY,
			Reset:   true,
		},
	}
}

// Print renders every notice, prefix-location chain included.
func (p *NoticePrinter) Print(notices []notice.Notice) {
	for _, n := range notices {
		line := fmt.Sprintf("%s%s[reset]: [%s] %s (at %s)",
			severityTint(n.Severity), n.Severity, n.Kind, n.Message, n.Location)
		fmt.Fprintln(p.Out, p.colorize.Color(p.truncate(line)))
		for i := len(n.Prefix) - 1; i >= 0; i-- {
			fmt.Fprintln(p.Out, p.truncate(fmt.Sprintf("    included from %s", n.Prefix[i])))
		}
	}
}

// Summary prints the closing count line.
func (p *NoticePrinter) Summary(modules, ops, errors int) {
	line := fmt.Sprintf("%d module(s), %d target op(s), %d error(s)", modules, ops, errors)
	if errors > 0 {
		line = "[red]" + line + "[reset]"
	} else {
		line = "[green]" + line + "[reset]"
	}
	fmt.Fprintln(p.Out, p.colorize.Color(line))
}

func severityTint(s notice.Severity) string {
	switch s {
	case notice.SeverityError:
		return "[red]"
	case notice.SeverityWarning:
		return "[yellow]"
	default:
		return "[cyan]"
	}
}

// truncate shortens line to the printer's width, counting grapheme-cluster
// display cells rather than bytes so wide runes don't over- or undershoot.
func (p *NoticePrinter) truncate(line string) string {
	if p.Width <= 4 || uniseg.StringWidth(line) <= p.Width {
		return line
	}
	budget := p.Width - 1
	var out []byte
	used := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		w := uniseg.StringWidth(g.Str())
		if used+w > budget {
			break
		}
		out = append(out, g.Str()...)
		used += w
	}
	return string(out) + "…"
}

// renderStructured serializes a generation result as JSON or YAML for
// machine consumers.
func renderStructured(out io.Writer, format string, r *generationResult) error {
	type noticeDoc struct {
		Kind     string `json:"kind" yaml:"kind"`
		Severity string `json:"severity" yaml:"severity"`
		Message  string `json:"message" yaml:"message"`
		Location string `json:"location" yaml:"location"`
	}
	doc := struct {
		Modules []string    `json:"modules" yaml:"modules"`
		Trace   []string    `json:"trace" yaml:"trace"`
		Notices []noticeDoc `json:"notices" yaml:"notices"`
	}{}
	for _, m := range r.Modules {
		doc.Modules = append(doc.Modules, m.Path)
	}
	doc.Trace = r.Trace
	for _, n := range r.Notices {
		doc.Notices = append(doc.Notices, noticeDoc{
			Kind:     string(n.Kind),
			Severity: n.Severity.String(),
			Message:  n.Message,
			Location: n.Location.String(),
		})
	}
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
