// Package topfiles implements the interactive browser for by-file diff
// reports.
package topfiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/ctsrd-cheri/cheriloc/internal/app"
	"github.com/ctsrd-cheri/cheriloc/internal/usecase"
)

const (
	countColWidth = 10
	minNameWidth  = 16
	chromeHeight  = 5 // title, tab bar, column header, footer
)

// Model is the report browser model.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	container *app.Container

	// State
	path    string
	buckets []usecase.TopFilesBucket
	err     error

	// Components
	keys     KeyMap
	styles   Styles
	viewport viewport.Model
	filter   textinput.Model
	help     help.Model

	// Numeric state
	tab    int
	width  int
	height int

	// Boolean state
	filtering bool
	loading   bool
}

// New creates a report browser for the diff report at path.
func New(c *app.Container, path string) *Model {
	fi := textinput.New()
	fi.Placeholder = "file name substring..."
	fi.Prompt = "/"
	fi.CharLimit = 200

	return &Model{
		container: c,
		path:      path,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		filter:    fi,
		help:      help.New(),
		loading:   true,
	}
}

// Init starts loading the report.
func (m *Model) Init() tea.Cmd {
	return m.loadReport()
}

// loadReport parses the report off the UI loop. The browser always
// receives every bucket untruncated; limiting is a print-mode concern.
func (m *Model) loadReport() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.TopFilesUseCase().Execute(context.Background(), usecase.TopFilesInput{
			Path:        m.path,
			IncludeSame: true,
		})
		if err != nil {
			return MsgReportLoaded{Err: err}
		}
		return MsgReportLoaded{Buckets: out.Buckets}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, max(msg.Height-chromeHeight, 1))
		m.refreshContent()
		return m, nil

	case MsgReportLoaded:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.buckets = msg.Buckets
		m.refreshContent()
		return m, nil
	}

	return m, nil
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevTab):
		if len(m.buckets) > 0 {
			m.tab = (m.tab + len(m.buckets) - 1) % len(m.buckets)
			m.refreshContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		if len(m.buckets) > 0 {
			m.tab = (m.tab + 1) % len(m.buckets)
			m.refreshContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		m.filter.Reset()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Scrolling keys fall through to the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleFilterKey handles keys while the filter input is focused.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil

	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.Reset()
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refreshContent()
	return m, cmd
}

// currentEntries returns the active bucket's entries with the filter
// applied.
func (m *Model) currentEntries() []usecase.FileEntry {
	if m.tab >= len(m.buckets) {
		return nil
	}
	entries := m.buckets[m.tab].Entries
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		return entries
	}
	filtered := make([]usecase.FileEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// refreshContent re-renders the active bucket into the viewport.
func (m *Model) refreshContent() {
	if m.width == 0 {
		return
	}
	entries := m.currentEntries()
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, m.renderRow(e))
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))
	m.viewport.GotoTop()
}

// nameWidth returns the width of the file name column.
func (m *Model) nameWidth() int {
	w := m.width - 3*countColWidth
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

func (m *Model) renderRow(e usecase.FileEntry) string {
	nameW := m.nameWidth()
	name := truncate.StringWithTail(e.Name, uint(nameW), "…") //nolint:gosec // column width, never negative
	return fmt.Sprintf("%-*s%*d%*d%*d", nameW, name,
		countColWidth, e.Counts.Code, countColWidth, e.Counts.Comment, countColWidth, e.Counts.Blank)
}

// View renders the browser.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewTitle())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("q: quit"))
		return b.String()
	}
	if m.loading {
		b.WriteString("Loading report...")
		return b.String()
	}

	b.WriteString(m.viewTabs())
	b.WriteString("\n")
	b.WriteString(m.viewColumnHead())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewTitle() string {
	return m.styles.Title.Render(m.path)
}

// viewTabs renders one tab per bucket with its entry count.
func (m *Model) viewTabs() string {
	tabs := make([]string, 0, len(m.buckets))
	for i, bucket := range m.buckets {
		label := fmt.Sprintf("%s (%d)", bucket.Name, len(bucket.Entries))
		if i == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *Model) viewColumnHead() string {
	return m.styles.ColumnHead.Render(fmt.Sprintf("%-*s%*s%*s%*s", m.nameWidth(), "FILE",
		countColWidth, "CODE", countColWidth, "COMMENT", countColWidth, "BLANK"))
}

func (m *Model) viewFooter() string {
	if m.filtering {
		return m.filter.View()
	}
	if v := m.filter.Value(); v != "" {
		return m.styles.Count.Render(fmt.Sprintf("filter: %s (%d files)  esc: clear", v, len(m.currentEntries())))
	}
	return m.help.View(m.keys)
}
