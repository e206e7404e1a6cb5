// Package tui is the interactive archive browser: a session list on
// the left, the selected log's summary region on the right. Summaries
// are loaded lazily as the cursor moves; raw regions are never shown
// here.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EliaAlberti/superbeads/pkg/sessionlog"
)

type model struct {
	ctx   context.Context
	store *sessionlog.Store
	refs  []sessionlog.Ref

	cursor        int
	selected      *sessionlog.Ref
	leftViewport  viewport.Model
	rightViewport viewport.Model
	summaryCache  map[string]string
	ready         bool
	width         int
	height        int
}

func initialModel(ctx context.Context, store *sessionlog.Store, refs []sessionlog.Ref) model {
	return model{
		ctx:          ctx,
		store:        store,
		refs:         refs,
		summaryCache: make(map[string]string),
	}
}

func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		leftWidth := msg.Width/3 - 2
		rightWidth := msg.Width - leftWidth - 6
		viewHeight := msg.Height - 5
		if !m.ready {
			m.leftViewport = viewport.New(leftWidth, viewHeight)
			m.rightViewport = viewport.New(rightWidth, viewHeight)
			m.ready = true
		} else {
			m.leftViewport.Width = leftWidth
			m.leftViewport.Height = viewHeight
			m.rightViewport.Width = rightWidth
			m.rightViewport.Height = viewHeight
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}

		case "down", "j":
			if m.cursor < len(m.refs)-1 {
				m.cursor++
				m.refresh()
			}

		case "pgup":
			m.rightViewport.ViewUp()

		case "pgdown":
			m.rightViewport.ViewDown()

		case "enter":
			if m.cursor < len(m.refs) {
				ref := m.refs[m.cursor]
				m.selected = &ref
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

// refresh rebuilds both panes around the current cursor.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	var list strings.Builder
	for i, ref := range m.refs {
		line := fmt.Sprintf("%s  %s", ref.CreatedAt.Format("02-01-2006 15:04"), ref.Topic)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		list.WriteString(line + "\n")
	}
	m.leftViewport.SetContent(list.String())
	m.rightViewport.SetContent(m.summaryFor(m.cursor))
	m.rightViewport.GotoTop()
}

// summaryFor loads (and caches) the summary region under the cursor.
func (m *model) summaryFor(i int) string {
	if i < 0 || i >= len(m.refs) {
		return ""
	}
	ref := m.refs[i]
	if cached, ok := m.summaryCache[ref.Path]; ok {
		return cached
	}
	content, err := m.store.Read(m.ctx, ref.Path)
	if err != nil {
		msg := dimStyle.Render(fmt.Sprintf("could not load %s: %v", ref.Name, err))
		m.summaryCache[ref.Path] = msg
		return msg
	}
	summary, _, _ := sessionlog.Split(content)
	m.summaryCache[ref.Path] = summary
	return summary
}

func (m model) View() string {
	if !m.ready {
		return "Loading archive..."
	}
	header := titleStyle.Render(fmt.Sprintf("Session archive (%d logs)", len(m.refs)))
	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		paneBorderStyle.Render(m.leftViewport.View()),
		paneBorderStyle.Render(m.rightViewport.View()),
	)
	help := helpStyle.Render("j/k: move  pgup/pgdn: scroll summary  enter: select  q: quit")
	return fmt.Sprintf("%s\n%s\n%s", header, panes, help)
}

// Browse lists the archive and runs the interactive browser. It
// returns the log the user selected with enter, or nil when they quit.
func Browse(ctx context.Context, store *sessionlog.Store, root string) (*sessionlog.Ref, error) {
	refs, err := store.List(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, nil
	}
	p := tea.NewProgram(initialModel(ctx, store, refs), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: run browser: %w", err)
	}
	if m, ok := final.(model); ok {
		return m.selected, nil
	}
	return nil, nil
}
