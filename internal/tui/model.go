// Package tui renders the character search view in a terminal.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"character-search/internal/api"
	"character-search/internal/model"
	"character-search/internal/search"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focus int

const (
	focusInput focus = iota
	focusButton
)

// settledMsg carries the outcome of the search tagged seq.
type settledMsg struct {
	seq  uint64
	resp api.Response
}

type Model struct {
	ctx      context.Context
	searcher search.Searcher
	view     *search.View

	input   textinput.Model
	spinner spinner.Model
	focus   focus
	styles  Styles
	width   int
}

func NewModel(ctx context.Context, searcher search.Searcher) Model {
	ti := textinput.New()
	ti.Placeholder = "Search characters..."
	ti.CharLimit = 0
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		searcher: searcher,
		view:     search.NewView(),
		input:    ti,
		spinner:  sp,
		focus:    focusInput,
		styles:   DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State exposes the current view state.
func (m Model) State() search.State {
	return m.view.Snapshot()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "enter":
			return m, m.execute()
		}
		if m.focus == focusButton {
			return m, nil
		}

	case settledMsg:
		if !m.view.Settle(msg.seq, msg.resp) {
			slog.Debug("Dropped stale search response", "seq", msg.seq, "latest", m.view.Latest())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.view.Snapshot().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.view.SetQuery(m.input.Value())
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

// execute starts a search for the current query and returns the command that
// performs it off the update loop.
func (m Model) execute() tea.Cmd {
	seq, query := m.view.Begin()
	slog.Info("Search started", "seq", seq, "query", query)

	ctx, searcher := m.ctx, m.searcher
	run := func() tea.Msg {
		return settledMsg{seq: seq, resp: searcher.Search(ctx, query)}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m Model) View() string {
	state := m.view.Snapshot()

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Character Search"))
	sb.WriteString("\n")

	button := m.styles.Button.Render("Search")
	if m.focus == focusButton {
		button = m.styles.Focused.Render("Search")
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, m.styles.Input.Render(m.input.View()), button))
	sb.WriteString("\n")

	if state.Loading {
		sb.WriteString(m.styles.Loading.Render(m.spinner.View() + " Loading..."))
		sb.WriteString("\n")
	}
	if state.Err != "" {
		sb.WriteString(m.styles.Error.Render(state.Err))
		sb.WriteString("\n")
	}

	if grid := m.renderGrid(state.Results); grid != "" {
		sb.WriteString("\n")
		sb.WriteString(grid)
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Help.Render("enter: search • tab: switch focus • esc: quit"))
	return sb.String()
}

func (m Model) renderGrid(results []model.Character) string {
	if len(results) == 0 {
		return ""
	}

	var rows []string
	for start := 0; start < len(results); start += gridColumns {
		end := min(start+gridColumns, len(results))
		cards := make([]string, 0, gridColumns)
		for _, char := range results[start:end] {
			cards = append(cards, m.renderCard(char))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(char model.Character) string {
	lines := []string{
		m.styles.Muted.Render(char.Image),
		m.styles.Name.Render(char.Name),
		fmt.Sprintf("Status: %s", char.Status),
		fmt.Sprintf("Species: %s", char.Species),
		fmt.Sprintf("Gender: %s", char.Gender),
	}
	return m.styles.Card.Render(strings.Join(lines, "\n"))
}
