package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const remarkCharLimit = 200

// remarkModal edits one employee's month remark.
type remarkModal struct {
	employeeID string
	name       string
	month      string
	input      textinput.Model
	confirmed  bool
}

func newRemarkModal(employeeID, name, month, current string) (*remarkModal, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "Remark for the month"
	ti.CharLimit = remarkCharLimit
	ti.Width = 40
	ti.SetValue(current)
	cmd := ti.Focus()
	return &remarkModal{employeeID: employeeID, name: name, month: month, input: ti}, cmd
}

// Update implements Modal. Enter confirms, esc discards.
func (r *remarkModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Confirm):
			r.confirmed = true
			return r, nil, true
		case key.Matches(k, keys.Escape):
			return r, nil, true
		}
	}
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd, false
}

// View implements Modal.
func (r *remarkModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Remark: " + r.name))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(r.month))
	b.WriteString("\n\n")
	b.WriteString(r.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter save  esc cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(helpModalWidth + 6)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
