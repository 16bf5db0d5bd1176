package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pdiddy/bibgen/internal/render"
	"github.com/pdiddy/bibgen/internal/tui"
)

// runInteractive opens the form on a terminal. Piped input is read as a
// single topic line and rendered as Markdown.
func runInteractive(cmd *cobra.Command, _ []string) error {
	agg, err := newAggregator()
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		topic, err := readTopic(cmd.InOrStdin())
		if err != nil {
			return err
		}
		return runOnce(cmd.Context(), agg, topic, render.FormatMarkdown, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	m := tui.New(cmd.Context(), agg)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("running form: %w", err)
	}
	return nil
}

// readTopic returns the first line of r. An empty stream yields "".
func readTopic(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if sc.Scan() {
		return sc.Text(), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading topic: %w", err)
	}
	return "", nil
}
