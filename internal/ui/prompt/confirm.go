package prompt

import (
	"io"

	tea "charm.land/bubbletea/v2"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	question string
	answered bool
	result   ConfirmResult
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		return m.answer(ConfirmResult{Confirmed: true})
	case "n", "N", "enter":
		return m.answer(ConfirmResult{})
	case "ctrl+c", "esc", "q":
		return m.answer(ConfirmResult{Cancelled: true})
	}
	return m, nil
}

func (m confirmModel) answer(r ConfirmResult) (tea.Model, tea.Cmd) {
	m.answered = true
	m.result = r
	return m, tea.Quit
}

func (m confirmModel) View() tea.View {
	return tea.NewView(m.text())
}

func (m confirmModel) text() string {
	if m.answered {
		return ""
	}
	return m.question + " [y/N] "
}

// Confirm shows a yes/no question on out, reading keys from in, and returns
// the user's choice. Enter without input answers "no".
func Confirm(in io.Reader, out io.Writer, question string) (ConfirmResult, error) {
	final, err := tea.NewProgram(confirmModel{question: question},
		tea.WithInput(in),
		tea.WithOutput(out),
	).Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	return final.(confirmModel).result, nil
}
