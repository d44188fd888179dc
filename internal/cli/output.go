package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type printer struct {
	w io.Writer

	success lipgloss.Style
	warning lipgloss.Style
	errs    lipgloss.Style
	info    lipgloss.Style
	header  lipgloss.Style
}

// newPrinter styles output for w. Non-terminal writers and NO_COLOR get plain text.
func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	if os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return &printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),  // green
		warning: r.NewStyle().Foreground(lipgloss.Color("11")), // yellow
		errs:    r.NewStyle().Foreground(lipgloss.Color("9")),  // red
		info:    r.NewStyle().Foreground(lipgloss.Color("14")), // cyan
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
	}
}

func (p *printer) Success(format string, args ...any) { p.line(p.success, format, args...) }
func (p *printer) Warning(format string, args ...any) { p.line(p.warning, format, args...) }
func (p *printer) Error(format string, args ...any)   { p.line(p.errs, format, args...) }
func (p *printer) Info(format string, args ...any)    { p.line(p.info, format, args...) }
func (p *printer) Header(format string, args ...any)  { p.line(p.header, format, args...) }

func (p *printer) line(s lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, s.Render(fmt.Sprintf(format, args...)))
}

// terminal reports whether w is an interactive terminal and its width.
func terminal(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 80, true
	}
	if width > 10 {
		width -= 4
	}
	return width, true
}

func renderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
