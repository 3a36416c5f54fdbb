// Package report renders consistency reports and update plans for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/ui/output"
	"go.trai.ch/lockstep/internal/ui/style"
)

// Renderer writes human-readable summaries to a writer.
type Renderer struct {
	w       io.Writer
	ok      lipgloss.Style
	bad     lipgloss.Style
	warn    lipgloss.Style
	accent  lipgloss.Style
	project lipgloss.Style
}

// New creates a Renderer writing to w. Colors follow output.ColorProfile.
func New(w io.Writer) *Renderer {
	profile := output.ColorProfile()
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return &Renderer{
		w:       w,
		ok:      r.NewStyle().Foreground(style.Green),
		bad:     r.NewStyle().Foreground(style.Red),
		warn:    r.NewStyle().Foreground(style.Yellow),
		accent:  r.NewStyle().Foreground(style.Iris),
		project: r.NewStyle().Bold(true),
	}
}

// Report writes the discrepancies of rep grouped by project.
func (r *Renderer) Report(rep *domain.ConsistencyReport) error {
	if rep.Empty() {
		return r.line(r.ok.Render(style.Check + " lock file is up to date"))
	}

	projects := rep.Projects()
	header := fmt.Sprintf("%s %s in %s",
		style.Cross,
		plural(rep.Len(), "discrepancy", "discrepancies"),
		plural(len(projects), "project", "projects"),
	)
	if err := r.line(r.bad.Render(header)); err != nil {
		return err
	}

	for _, p := range projects {
		if err := r.line(r.project.Render(p.Project)); err != nil {
			return err
		}
		for _, d := range p.Discrepancies {
			icon, st := r.kindStyle(d.Kind)
			if err := r.line("  " + st.Render(icon+" "+d.String())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Plan writes the update the package manager is about to perform.
func (r *Renderer) Plan(opts domain.InstallOptions) error {
	if opts.Mode() == domain.ModeNoOp {
		return r.line(r.ok.Render(style.Check + " nothing to update"))
	}

	msg := fmt.Sprintf("%s %s update", style.Arrow, opts.Mode())
	if targets := opts.Targets(); len(targets) > 0 {
		msg += fmt.Sprintf(" of %s: %s",
			plural(len(targets), "dependency", "dependencies"),
			strings.Join(targets, ", "),
		)
	}

	var flags []string
	if opts.ForceReprocess() {
		flags = append(flags, "recheck")
	}
	if opts.NoLink() {
		flags = append(flags, "no-link")
	}
	if opts.BypassPolicy() {
		flags = append(flags, "bypass-policy")
	}
	if len(flags) > 0 {
		msg += " [" + strings.Join(flags, ", ") + "]"
	}

	return r.line(r.accent.Render(msg))
}

func (r *Renderer) kindStyle(k domain.DiscrepancyKind) (string, lipgloss.Style) {
	switch k {
	case domain.KindMissing:
		return style.Cross, r.bad
	case domain.KindLinkMismatch:
		return style.Tilde, r.warn
	default:
		return style.Warning, r.warn
	}
}

func (r *Renderer) line(s string) error {
	_, err := io.WriteString(r.w, s+"\n")
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
