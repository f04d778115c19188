package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ModeListModel - Interactive layout mode selection
// =============================================================================

// modeEntry pairs a mode name with a one-line description for the picker.
type modeEntry struct {
	Name        string
	Description string
}

// modeEntries lists the selectable layout modes in display order.
var modeEntries = []modeEntry{
	{arrange.ModeWalkabout, "radial map around the concept, clustered at higher levels"},
	{arrange.ModeHopscotch, "similarity chain, each step from the previous note"},
	{arrange.ModeRollingPath, "similarity chain against the rolling centroid"},
	{arrange.ModeRegiment, "plain grid, no similarity needed"},
	{arrange.ModeGaggle, "loose scatter with minimum spacing"},
}

// ModeListModel is the bubbletea model for interactive mode selection.
type ModeListModel struct {
	Entries  []modeEntry
	Cursor   int
	Selected string
}

// NewModeListModel creates a mode list model with the cursor on current.
func NewModeListModel(current string) ModeListModel {
	m := ModeListModel{Entries: modeEntries}
	for i, e := range m.Entries {
		if e.Name == current {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m ModeListModel) Init() tea.Cmd {
	return nil
}

func (m ModeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Entries[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ModeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Mode"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, e := range m.Entries {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-12s %s", cursor, e.Name, listDimStyle.Render(e.Description))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// selectMode runs the interactive mode picker and returns the chosen mode.
// ok is false when the user quit without selecting.
func selectMode(current string) (string, bool, error) {
	final, err := tea.NewProgram(NewModeListModel(current)).Run()
	if err != nil {
		return "", false, fmt.Errorf("mode picker: %w", err)
	}
	m, ok := final.(ModeListModel)
	if !ok || m.Selected == "" {
		return "", false, nil
	}
	return m.Selected, true, nil
}
