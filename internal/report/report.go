// Package report renders quality reports for the console.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/starford/kbase/internal/quality"
)

const ruleWidth = 60

// Icons for category scores.
const (
	IconPass = "✅"
	IconWarn = "⚠️"
	IconFail = "❌"
)

// Formatter writes human-readable quality reports.
type Formatter struct {
	w       io.Writer
	verbose bool
	color   bool

	title lipgloss.Style
	pass  lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithVerbose lists every check instead of only failing ones.
func WithVerbose(v bool) Option {
	return func(f *Formatter) { f.verbose = v }
}

// WithColor forces colored output on or off.
func WithColor(c bool) Option {
	return func(f *Formatter) { f.color = c }
}

// New creates a Formatter writing to w. Color defaults to on when w is a
// terminal.
func New(w io.Writer, opts ...Option) *Formatter {
	f := &Formatter{
		w:     w,
		color: IsTerminal(w),
		title: lipgloss.NewStyle().Bold(true),
		pass:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		muted: lipgloss.NewStyle().Faint(true),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// CategoryIcon maps a category score to its icon.
func CategoryIcon(score int) string {
	switch {
	case score == 100:
		return IconPass
	case score >= 75:
		return IconWarn
	default:
		return IconFail
	}
}

// Batch writes the banner, every report, and the overall summary.
func (f *Formatter) Batch(reports []quality.Report) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(f.style(f.title, "📊 Knowledgebase Entry Quality Report"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Checked %d file(s)\n\n", len(reports))
	for _, r := range reports {
		f.writeReport(&b, r)
		b.WriteString("\n")
	}
	f.writeSummary(&b, quality.Summarize(reports))
	_, err := io.WriteString(f.w, b.String())
	return err
}

// Report writes a single report.
func (f *Formatter) Report(r quality.Report) error {
	var b strings.Builder
	f.writeReport(&b, r)
	_, err := io.WriteString(f.w, b.String())
	return err
}

// Format returns the plain-text rendering of a single report.
func Format(r quality.Report, verbose bool) string {
	var b strings.Builder
	f := &Formatter{verbose: verbose}
	f.writeReport(&b, r)
	return b.String()
}

// Warn writes a non-fatal problem, e.g. a missing file in a batch.
func (f *Formatter) Warn(format string, args ...any) {
	fmt.Fprintln(f.w, f.style(f.warn, fmt.Sprintf(format, args...)))
}

// Error writes a fatal problem.
func (f *Formatter) Error(format string, args ...any) {
	fmt.Fprintln(f.w, f.style(f.fail, fmt.Sprintf(format, args...)))
}

func (f *Formatter) writeReport(b *strings.Builder, r quality.Report) {
	rule := strings.Repeat("=", ruleWidth)
	b.WriteString("\n" + rule + "\n")
	b.WriteString(f.style(f.title, fmt.Sprintf("📄 %s (%s)", r.Title, r.Slug)) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "Score: %s (%d/%d checks passed)\n\n", f.score(r.Score), r.Passed, r.Total)

	for _, cat := range r.ByCategory() {
		fmt.Fprintf(b, "%s %s (%d%% - %d/%d)\n", CategoryIcon(cat.Score), cat.Name, cat.Score, cat.Passed, cat.Total)
		for _, c := range cat.Checks {
			if !f.verbose && c.Passed {
				continue
			}
			b.WriteString(f.checkLine(c) + "\n")
		}
		b.WriteString("\n")
	}
}

func (f *Formatter) checkLine(c quality.Check) string {
	status := f.style(f.fail, "✗")
	if c.Passed {
		status = f.style(f.pass, "✓")
	}
	msg := ""
	if c.Message != "" {
		msg = " - " + c.Message
		if c.IsManual() {
			msg = f.style(f.muted, msg)
		}
	}
	return fmt.Sprintf("  %s %s %s%s", status, c.ID, c.Description, msg)
}

func (f *Formatter) writeSummary(b *strings.Builder, s quality.Summary) {
	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "Overall Average: %s (%d/%d checks passed)\n", f.score(s.AverageScore), s.Passed, s.Total)
	b.WriteString(rule + "\n\n")
}

func (f *Formatter) score(n int) string {
	text := fmt.Sprintf("%d%%", n)
	switch {
	case n >= 90:
		return f.style(f.pass, text)
	case n >= 60:
		return f.style(f.warn, text)
	default:
		return f.style(f.fail, text)
	}
}

func (f *Formatter) style(s lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return s.Render(text)
}
