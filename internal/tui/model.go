// Package tui is the interactive form: one topic input, Enter to generate,
// and a scrollable view of the rendered bibliography.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/render"
	"github.com/pdiddy/bibgen/pkg/types"
)

// Generator is the form-facing subset of the aggregator.
type Generator interface {
	Generate(ctx context.Context, topic string, n bibliography.Notifier) (types.Bibliography, error)
}

// resultMsg carries a finished run back into the update loop.
type resultMsg struct {
	bib     types.Bibliography
	notices []bibliography.Notice
	err     error
}

// Model is the Bubble Tea model for the form.
type Model struct {
	ctx        context.Context
	gen        Generator
	input      textinput.Model
	spinner    spinner.Model
	viewport   viewport.Model
	styles     render.Styles
	generating bool
	ready      bool
	status     string
	content    string
}

// New creates the form model. ctx bounds every generation run.
func New(ctx context.Context, gen Generator) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter a topic or problem and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		gen:      gen,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(0, 0),
		styles:   render.Styles{Enabled: true},
		status:   "Enter a topic and press Enter to generate a list of relevant sources.",
		content:  "No bibliography yet.",
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles keys, window resizes, spinner ticks and finished runs.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frameH := resultBoxStyle.GetFrameSize()
		_, inputH := inputBoxStyle.GetFrameSize()
		reserved := 3 + 1 + inputH + 1 // title, subtitle, spacer; input; status
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-frameH)
		m.viewport.SetContent(m.content)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.generating {
				return m, nil
			}
			topic, err := bibliography.NormalizeTopic(m.input.Value())
			if err != nil {
				m.status = m.styles.Error(render.MsgInvalidTopic)
				return m, nil
			}
			m.generating = true
			m.status = render.MsgGenerating
			return m, tea.Batch(m.spinner.Tick, m.generate(topic))
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.generating = false
		m.status, m.content = m.present(msg)
		m.viewport.SetContent(m.content)
		m.viewport.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// generate runs the aggregator off the update loop and collects its notices.
func (m Model) generate(topic string) tea.Cmd {
	return func() tea.Msg {
		var col bibliography.Collector
		bib, err := m.gen.Generate(m.ctx, topic, &col)
		return resultMsg{bib: bib, notices: col.Notices, err: err}
	}
}

// present returns the status line and viewport content for a finished run.
func (m Model) present(msg resultMsg) (status, content string) {
	var sb strings.Builder
	for _, n := range msg.notices {
		if n.Level == bibliography.LevelWarn {
			sb.WriteString(m.styles.Warn(n.String()))
		} else {
			sb.WriteString(m.styles.Info(n.String()))
		}
		sb.WriteString("\n")
	}
	if len(msg.notices) > 0 {
		sb.WriteString("\n")
	}

	switch {
	case errors.Is(msg.err, bibliography.ErrEmptyTopic):
		return m.styles.Error(render.MsgInvalidTopic), sb.String()
	case msg.err != nil:
		return m.styles.Error("Error: " + msg.err.Error()), sb.String()
	case msg.bib.IsEmpty():
		return m.styles.Warn(render.MsgNoResults), sb.String() + render.MsgNoResults
	}
	sb.WriteString(render.MarkdownString(msg.bib))
	return m.styles.Success(fmt.Sprintf("Found %d sources for %q.", msg.bib.Len(), msg.bib.Topic)), sb.String()
}

// View renders the form.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := titleStyle.Render("Bibliography Generator")
	subtitle := subtitleStyle.Render("Enter a topic or problem and generate a list of relevant sources.")
	status := m.status
	if m.generating {
		status = m.spinner.View() + " " + render.MsgGenerating
	}
	return title + "\n" + subtitle + "\n\n" +
		inputBoxStyle.Render(m.input.View()) + "\n" +
		status + "\n" +
		resultBoxStyle.Render(m.viewport.View())
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	subtitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
