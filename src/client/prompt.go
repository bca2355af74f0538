package client

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apimgr/cityweather/src/renderer"
)

// cityPromptModel is the bubbletea model for asking a city name
type cityPromptModel struct {
	input     string
	cancelled bool
	done      bool
}

func newCityPromptModel() cityPromptModel {
	return cityPromptModel{}
}

// Init initializes the prompt model
func (m cityPromptModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses
func (m cityPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit

	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}

	case tea.KeySpace:
		m.input += " "

	case tea.KeyRunes:
		m.input += string(keyMsg.Runes)
	}

	return m, nil
}

// View renders the prompt
func (m cityPromptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(renderer.ColorPurple)).
		Bold(true)

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(renderer.ColorCyan)).
		Padding(0, 1).
		Width(40)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(renderer.ColorGray))

	var b strings.Builder
	b.WriteString(labelStyle.Render("City:"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.input + "_"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter: fetch • Esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// runCityPrompt asks for a city on a terminal. Cancelling yields an empty
// string, which callers reject as invalid input.
func runCityPrompt(in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(newCityPromptModel(), tea.WithInput(in), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("city prompt: %w", err)
	}

	model := finalModel.(cityPromptModel)
	if model.cancelled {
		return "", nil
	}
	return model.input, nil
}
