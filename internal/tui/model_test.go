package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/render"
	"github.com/pdiddy/bibgen/pkg/types"
)

type fakeGenerator struct {
	calls  int
	topic  string
	bib    types.Bibliography
	err    error
	notify func(n bibliography.Notifier)
}

func (f *fakeGenerator) Generate(_ context.Context, topic string, n bibliography.Notifier) (types.Bibliography, error) {
	f.calls++
	f.topic = topic
	if f.notify != nil {
		f.notify(n)
	}
	return f.bib, f.err
}

func newTestModel(gen Generator) Model {
	m := New(context.Background(), gen)
	m.styles = render.Styles{}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func typeTopic(m Model, topic string) Model {
	m.input.SetValue(topic)
	return m
}

func pressEnter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestViewBeforeResize(t *testing.T) {
	m := New(context.Background(), &fakeGenerator{})
	assert.Equal(t, "Loading...", m.View())
}

func TestEnterWithEmptyTopic(t *testing.T) {
	gen := &fakeGenerator{}
	m := typeTopic(newTestModel(gen), "   ")

	m, cmd := pressEnter(t, m)

	assert.Nil(t, cmd)
	assert.False(t, m.generating)
	assert.Equal(t, render.MsgInvalidTopic, m.status)
	assert.Zero(t, gen.calls)
}

func TestEnterGeneratesAndRendersRecords(t *testing.T) {
	gen := &fakeGenerator{
		bib: types.Bibliography{
			Topic: "oceans",
			Style: types.StyleNone,
			Records: []types.SourceRecord{
				{Title: "Ocean Heat", Link: "https://example.com", Description: "d"},
			},
		},
		notify: func(n bibliography.Notifier) {
			n.Info("Searching sources with together...")
			n.Warn("serper", errors.New("http 500"))
		},
	}
	m := typeTopic(newTestModel(gen), "  oceans ")

	m, cmd := pressEnter(t, m)
	require.NotNil(t, cmd)
	assert.True(t, m.generating)
	assert.Contains(t, m.View(), render.MsgGenerating)

	// Enter is ignored while a run is in flight.
	m2, cmd2 := pressEnter(t, m)
	assert.Nil(t, cmd2)
	assert.True(t, m2.generating)

	msg := m.generate("oceans")()
	updated, _ := m.Update(msg)
	m = updated.(Model)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "oceans", gen.topic)
	assert.False(t, m.generating)
	assert.Equal(t, `Found 1 sources for "oceans".`, m.status)
	assert.Contains(t, m.content, "Searching sources with together...")
	assert.Contains(t, m.content, "Error accessing the serper API: http 500")
	assert.Contains(t, m.content, "**1. [Ocean Heat](https://example.com)**")
}

func TestResultNoSources(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	updated, _ := m.Update(resultMsg{bib: types.Bibliography{Topic: "x"}})
	m = updated.(Model)

	assert.Equal(t, render.MsgNoResults, m.status)
	assert.Equal(t, render.MsgNoResults, m.content)
}

func TestResultConfigurationError(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	updated, _ := m.Update(resultMsg{err: fmt.Errorf("configuring source together: TOGETHER_API_KEY: secret not found")})
	m = updated.(Model)

	assert.True(t, strings.HasPrefix(m.status, "Error: configuring source together"))
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestTypingUpdatesInput(t *testing.T) {
	m := newTestModel(&fakeGenerator{})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ai")})
	m = updated.(Model)
	assert.Equal(t, "ai", m.input.Value())
}
