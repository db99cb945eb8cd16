package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/output/styles"
	"github.com/arthur-debert/overlay/pkg/overlay"
	"github.com/arthur-debert/overlay/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Arrow separates a target from its directive
const Arrow = "←"

// Printer renders applicator events and listings. It implements
// overlay.Reporter. FormatAuto must be resolved by the caller; it is
// rendered as FormatText.
type Printer struct {
	w        io.Writer
	format   Format
	renderer *lipgloss.Renderer
	encoder  *json.Encoder
	err      error
}

var _ overlay.Reporter = (*Printer)(nil)

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, format Format) *Printer {
	p := &Printer{w: w, format: format}
	switch format {
	case FormatTerminal:
		p.renderer = lipgloss.NewRenderer(w)
	case FormatJSON:
		p.encoder = json.NewEncoder(w)
		p.encoder.SetEscapeHTML(false)
	}
	return p
}

// Err returns the first write error, if any
func (p *Printer) Err() error {
	return p.err
}

// Start implements overlay.Reporter
func (p *Printer) Start(m *types.Manifest) {
	if p.format == FormatJSON {
		ev := event{Event: "start", Overlay: m.Name}
		if m.Metadata != nil {
			ev.Description = m.Metadata.Description
			ev.Version = m.Metadata.Version
		}
		p.encode(ev)
		return
	}

	p.line(p.style("Title", "Applying overlay: ") + p.style("Target", m.Name))
	if m.Metadata != nil {
		p.line("  " + p.style("Label", "Description:") + " " + m.Metadata.Description)
		p.line("  " + p.style("Label", "Version:") + " " + m.Metadata.Version)
	}
}

// Processing implements overlay.Reporter
func (p *Printer) Processing(entry types.Entry) {
	if p.format == FormatJSON {
		p.encode(event{Event: "processing", Target: entry.Target, Directive: entry.Directive.Raw()})
		return
	}

	p.line("  " + p.style("Label", "Processing:") + " " + p.entry(entry))
}

// Applied implements overlay.Reporter
func (p *Printer) Applied(o overlay.Outcome) {
	if p.format == FormatJSON {
		p.encode(event{
			Event:     "applied",
			Target:    o.Entry.Target,
			Directive: o.Entry.Directive.Raw(),
			Strategy:  o.Entry.Directive.Strategy.String(),
			Source:    o.Source,
			Detail:    o.Detail(),
			Backup:    o.Backup,
		})
		return
	}

	if o.Backup != "" {
		p.line("    " + p.style("Detail", "→ Backed up to "+o.Backup))
	}
	p.line("    " + p.style("Detail", "→ "+o.Detail()))
}

// Finished implements overlay.Reporter
func (p *Printer) Finished(result *overlay.Result) {
	if p.format == FormatJSON {
		modified := len(result.Processed)
		p.encode(event{Event: "finished", Overlay: result.Overlay, Modified: &modified, BackupDir: result.BackupDir})
		return
	}

	p.line(p.style("Success", "Overlay applied successfully!"))
	p.line(fmt.Sprintf("  Modified %d file(s)", len(result.Processed)))
	if result.BackupDir != "" {
		p.line("  " + p.style("Label", "Backups stored in:") + " " + result.BackupDir)
	}
}

// Failed implements overlay.Reporter. The error itself is reported by the
// caller on stderr.
func (p *Printer) Failed(err error) {
	if p.format == FormatJSON {
		p.encode(event{Event: "failed", Code: string(errors.GetErrorCode(err)), Error: err.Error()})
		return
	}

	p.line(p.style("Error", "Overlay application failed"))
}

// List writes exactly one line per entry
func (p *Printer) List(entries []types.Entry) {
	for _, e := range entries {
		strategy := e.Directive.Strategy.String()

		switch p.format {
		case FormatJSON:
			p.encode(listing{Target: e.Target, Directive: e.Directive.Raw(), Strategy: strategy})
		case FormatTerminal:
			badge := StrategyStyle(e.Directive.Strategy).Sprint(fmt.Sprintf(" %-7s ", strategy))
			p.line(badge + " " + p.entry(e))
		default:
			p.line(fmt.Sprintf("%-7s %s %s %s", strategy, e.Target, Arrow, e.Directive.Raw()))
		}
	}
}

// StrategyStyle returns the badge style of a strategy
func StrategyStyle(s types.Strategy) *pterm.Style {
	switch s {
	case types.StrategyMerge:
		return pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	case types.StrategyPatch:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case types.StrategyReplace:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

type event struct {
	Event       string `json:"event"`
	Overlay     string `json:"overlay,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Target      string `json:"target,omitempty"`
	Directive   string `json:"directive,omitempty"`
	Strategy    string `json:"strategy,omitempty"`
	Source      string `json:"source,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Backup      string `json:"backup,omitempty"`
	Modified    *int   `json:"modified,omitempty"`
	BackupDir   string `json:"backup_dir,omitempty"`
	Code        string `json:"code,omitempty"`
	Error       string `json:"error,omitempty"`
}

type listing struct {
	Target    string `json:"target"`
	Directive string `json:"directive"`
	Strategy  string `json:"strategy"`
}

func (p *Printer) entry(e types.Entry) string {
	return strings.Join([]string{
		p.style("Target", e.Target),
		p.style("Arrow", Arrow),
		p.style("Source", e.Directive.Raw()),
	}, " ")
}

// style renders s with a registry style in terminal mode and returns it
// unchanged otherwise
func (p *Printer) style(name, s string) string {
	if p.renderer == nil {
		return s
	}
	return p.renderer.NewStyle().Inherit(styles.GetStyle(name)).Render(s)
}

func (p *Printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *Printer) encode(v any) {
	if p.err != nil {
		return
	}
	p.err = p.encoder.Encode(v)
}
