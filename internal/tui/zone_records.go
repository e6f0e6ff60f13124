// Package tui implements the interactive terminal views for metasync.
package tui

import (
	"context"
	"fmt"
	"strings"

	"opsnz/metasync/internal/tui/components"
	"opsnz/metasync/internal/tui/styles"
	"opsnz/metasync/internal/zonesync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RecordLoader fetches the record sets of a zone.
type RecordLoader func(ctx context.Context) ([]zonesync.RRSet, error)

// RunZoneRecords opens the interactive record browser for a zone.
func RunZoneRecords(domain string, load RecordLoader) error {
	model := newZoneRecordsModel(domain, load)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// --- Messages ---

type recordsLoadedMsg struct {
	records []zonesync.RRSet
}

type recordsErrorMsg struct {
	err error
}

// --- Record browser model ---

type zoneRecordsModel struct {
	domain string
	load   RecordLoader

	records   []zonesync.RRSet
	filtered  []zonesync.RRSet
	cursor    int
	listStart int // for scrolling

	typeFilter string // e.g. "A", "CNAME", "" for all
	typeCycle  []string

	width  int
	height int

	loading       bool
	spinner       spinner.Model
	err           error
	status        string
	statusIsError bool
}

func newZoneRecordsModel(domain string, load RecordLoader) zoneRecordsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	return zoneRecordsModel{
		domain:    domain,
		load:      load,
		typeCycle: []string{"", "A", "AAAA", "CNAME", "MX", "NS", "TXT", "CAA"},
		loading:   true,
		spinner:   s,
	}
}

func (m zoneRecordsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadRecordsCmd())
}

func (m zoneRecordsModel) loadRecordsCmd() tea.Cmd {
	return func() tea.Msg {
		records, err := m.load(context.Background())
		if err != nil {
			return recordsErrorMsg{err}
		}
		return recordsLoadedMsg{records}
	}
}

func (m *zoneRecordsModel) applyFilter() {
	m.filtered = make([]zonesync.RRSet, 0)
	for _, rr := range m.records {
		if m.typeFilter == "" || strings.EqualFold(string(rr.Type), m.typeFilter) {
			m.filtered = append(m.filtered, rr)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	if m.listStart >= len(m.filtered) {
		m.listStart = 0
	}
}

func (m zoneRecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
		case "f":
			// Cycle type filter
			idx := 0
			for i, t := range m.typeCycle {
				if t == m.typeFilter {
					idx = i
					break
				}
			}
			idx = (idx + 1) % len(m.typeCycle)
			m.typeFilter = m.typeCycle[idx]
			m.applyFilter()
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.loadRecordsCmd())
		}

	case recordsLoadedMsg:
		m.loading = false
		m.records = msg.records
		m.applyFilter()
		m.status = fmt.Sprintf("Loaded %d record sets.", len(m.records))
		m.statusIsError = false

	case recordsErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m zoneRecordsModel) View() string {
	header := components.Header(m.width, m.domain, "")

	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "j/k", Desc: "nav"},
		{Key: "f", Desc: "filter"},
		{Key: "r", Desc: "reload"},
		{Key: "q", Desc: "quit"},
	})

	statusBar := components.StatusBar(m.width, m.status, m.statusIsError)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := m.height - headerH - footerH - statusH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.loading {
		content = fmt.Sprintf("\n  %s Loading records...", m.spinner.View())
	} else if m.err != nil {
		content = fmt.Sprintf("\n  %s", styles.ErrorText.Render(m.err.Error()))
	} else if len(m.records) == 0 {
		content = "\n  No records found in this zone."
	} else {
		content = m.renderFilterBar() + "\n" + m.renderTable(contentH-2)
	}

	lines := lipgloss.Height(content)
	if lines < contentH {
		content += lipgloss.NewStyle().Height(contentH - lines).Render("")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar, footer)
}

func (m zoneRecordsModel) renderFilterBar() string {
	var parts []string
	parts = append(parts, "  Filter: ")

	for _, t := range m.typeCycle {
		label := t
		if t == "" {
			label = "All"
		}

		if t == m.typeFilter {
			parts = append(parts, fmt.Sprintf("[%s]", styles.AccentText.Render(label)))
		} else {
			parts = append(parts, fmt.Sprintf(" %s ", styles.MutedText.Render(label)))
		}
	}

	return strings.Join(parts, "")
}

func (m zoneRecordsModel) renderTable(height int) string {
	if len(m.filtered) == 0 {
		return "\n  No records match current filter."
	}

	cols := []int{24, 6, 7, 44}

	header := styles.TableHeader.Render(
		fmt.Sprintf("  %-*s %-*s %-*s %-*s",
			cols[0], "NAME",
			cols[1], "TYPE",
			cols[2], "TTL",
			cols[3], "VALUE",
		),
	)

	var rows []string
	rows = append(rows, header)

	if m.cursor < m.listStart {
		m.listStart = m.cursor
	} else if m.cursor >= m.listStart+(height-1) {
		m.listStart = m.cursor - (height - 2)
	}

	end := m.listStart + height - 1
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.listStart; i < end; i++ {
		rr := m.filtered[i]

		cursor := " "
		rowStyle := styles.TableCell
		if i == m.cursor {
			cursor = styles.AccentText.Render(">")
			rowStyle = styles.TableSelectedRow
		}

		name := rr.Name
		if name == "" {
			name = "@"
		}

		value := strings.Join(rr.DisplayValues(), ", ")
		if len(value) > cols[3]-2 {
			value = value[:cols[3]-5] + "..."
		}

		typeBadge := styles.RecordTypeStyle(string(rr.Type)).Render(fmt.Sprintf("%-*s", cols[1], string(rr.Type)))

		row := fmt.Sprintf("%s %s %s %s %s",
			cursor,
			rowStyle.Render(fmt.Sprintf("%-*s", cols[0], name)),
			typeBadge,
			rowStyle.Render(fmt.Sprintf("%-*d", cols[2], rr.TTL)),
			rowStyle.Render(value),
		)
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}
