package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pdiddy/bibgen/internal/bibliography"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Styles colors notices. The zero value renders plain text.
type Styles struct {
	Enabled bool
}

// StylesFor enables color when w is a terminal.
func StylesFor(w io.Writer) Styles {
	f, ok := w.(*os.File)
	return Styles{Enabled: ok && term.IsTerminal(int(f.Fd()))}
}

func (s Styles) render(st lipgloss.Style, text string) string {
	if !s.Enabled {
		return text
	}
	return st.Render(text)
}

// Info styles a progress line.
func (s Styles) Info(text string) string { return s.render(infoStyle, text) }

// Warn styles a source failure.
func (s Styles) Warn(text string) string { return s.render(warnStyle, text) }

// Error styles an input or configuration error.
func (s Styles) Error(text string) string { return s.render(errorStyle, text) }

// Success styles the result summary.
func (s Styles) Success(text string) string { return s.render(successStyle, text) }

// WriterNotifier prints notices to W, one per line.
type WriterNotifier struct {
	W      io.Writer
	Styles Styles
}

var _ bibliography.Notifier = (*WriterNotifier)(nil)

// NewWriterNotifier returns a notifier for w, colored when w is a terminal.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{W: w, Styles: StylesFor(w)}
}

// Info prints "info: msg".
func (n *WriterNotifier) Info(msg string) {
	fmt.Fprintln(n.W, n.Styles.Info("info: "+msg))
}

// Warn prints "warning: ..." naming the failed source.
func (n *WriterNotifier) Warn(source string, err error) {
	note := bibliography.Notice{Level: bibliography.LevelWarn, Source: source, Message: err.Error()}
	fmt.Fprintln(n.W, n.Styles.Warn("warning: "+note.String()))
}
