// Package tui is the terminal front-end: the same page as the web one,
// drawn with lipgloss and driven by bubbletea key events.
package tui

import (
	"fmt"
	"strings"

	"croprec/recommend"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	session  *recommend.Session
	view     recommend.View
	inputs   []textinput.Model
	focused  int
	width    int
	height   int
	quitting bool
}

func NewModel(service *recommend.Service) Model {
	session := recommend.NewSession(service)
	view := session.View()

	inputs := make([]textinput.Model, len(view.Inputs))
	for i, in := range view.Inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 8
		ti.Width = 10
		ti.SetValue(in.Value)
		ti.CursorEnd()
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		session: session,
		view:    view,
		inputs:  inputs,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "+", "=":
			m.step(1)
			return m, nil
		case "-":
			m.step(-1)
			return m, nil
		case "enter":
			m.commit(m.focused)
			m.normalize(m.focused)
			if m.view.Ready {
				m.view = m.session.Handle(recommend.SubmitEvent())
			}
			return m, nil
		}

		if msg.Type == tea.KeyRunes {
			msg.Runes = numericRunes(msg.Runes)
			if len(msg.Runes) == 0 {
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		m.commit(m.focused)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// commit hands the text of input i to the session. Text that is not a
// number leaves the control as it was.
func (m *Model) commit(i int) {
	id := recommend.FieldID(i)
	v, err := id.Spec().Parse(m.inputs[i].Value())
	if err != nil {
		return
	}
	m.view = m.session.Handle(recommend.Input(id, v))
}

// normalize replaces the text of input i with the value the control holds.
func (m *Model) normalize(i int) {
	m.inputs[i].SetValue(m.view.Inputs[i].Value)
	m.inputs[i].CursorEnd()
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.normalize(m.focused)
	m.inputs[m.focused].Blur()
	m.focused = (m.focused + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focused].Focus()
}

func (m *Model) step(direction float64) {
	id := recommend.FieldID(m.focused)
	current := m.session.Controls().Value(id)
	m.view = m.session.Handle(recommend.Input(id, current+direction*id.Spec().Step))
	m.normalize(m.focused)
}

func numericRunes(runes []rune) []rune {
	kept := runes[:0:0]
	for _, r := range runes {
		if (r >= '0' && r <= '9') || r == '.' {
			kept = append(kept, r)
		}
	}
	return kept
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.mainView())
}

func (m Model) sidebarView() string {
	rows := []string{headerStyle.Render(m.view.SidebarHeader)}
	for i, in := range m.view.Inputs {
		label := labelStyle
		if i == m.focused {
			label = focusedLabelStyle
		}
		rows = append(rows,
			label.Render(in.Label)+" "+boundsStyle.Render(fmt.Sprintf("[%s, %s]", in.Min, in.Max)),
			m.inputs[i].View(),
		)
	}
	return sidebarStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) mainView() string {
	sections := []string{
		titleStyle.Render(m.view.Title),
		subtitleStyle.Render(m.view.Subtitle),
	}
	if m.view.LoadError != "" {
		sections = append(sections, errorStyle.Render(m.view.LoadError))
	}
	sections = append(sections, headerStyle.Render(m.view.EchoHeader), echoTable(m.view.Echo))

	if m.view.Ready {
		sections = append(sections, buttonStyle.Render(m.view.ButtonLabel))
	} else {
		sections = append(sections, warningStyle.Render(m.view.Warning))
	}
	if out := m.view.Outcome; out != nil {
		if out.Succeeded {
			sections = append(sections, successStyle.Render(out.Message))
		} else {
			sections = append(sections, errorStyle.Render(out.Message))
		}
	}

	disclaimer := infoStyle
	if m.width > sidebarWidth+8 {
		disclaimer = disclaimer.Width(m.width - sidebarWidth - 8)
	}
	sections = append(sections,
		disclaimer.Render(m.view.Disclaimer),
		helpStyle.Render("tab/↑↓: move • +/-: step • enter: recommend • esc: quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func echoTable(cells []recommend.EchoCell) string {
	var header, values strings.Builder
	for _, cell := range cells {
		width := max(len(cell.Key), len(cell.Value)) + 2
		fmt.Fprintf(&header, "%*s", width, cell.Key)
		fmt.Fprintf(&values, "%*s", width, cell.Value)
	}
	return header.String() + "\n" + values.String()
}
