package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var errPromptCancelled = errors.New("login cancelled")

// Credentials entered on the command line or in the login prompt
type Credentials struct {
	Username string
	Password string
}

type promptStep int

const (
	stepUsername promptStep = iota
	stepPassword
	stepDone
)

// loginPrompt is a bubbletea model asking for whichever credentials are still missing
type loginPrompt struct {
	step      promptStep
	input     string
	creds     Credentials
	cancelled bool
}

func newLoginPrompt(creds Credentials) loginPrompt {
	m := loginPrompt{creds: creds}
	m.step = m.nextStep()
	return m
}

func (m loginPrompt) nextStep() promptStep {
	switch {
	case m.creds.Username == "":
		return stepUsername
	case m.creds.Password == "":
		return stepPassword
	default:
		return stepDone
	}
}

func (m loginPrompt) Init() tea.Cmd {
	if m.step == stepDone {
		return tea.Quit
	}
	return nil
}

func (m loginPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}

	case tea.KeySpace:
		m.input += " "

	case tea.KeyRunes:
		m.input += string(key.Runes)

	case tea.KeyEnter:
		if m.input == "" {
			return m, nil
		}
		switch m.step {
		case stepUsername:
			m.creds.Username = strings.TrimSpace(m.input)
		case stepPassword:
			m.creds.Password = m.input
		}
		m.input = ""
		m.step = m.nextStep()
		if m.step == stepDone {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m loginPrompt) View() string {
	if m.step == stepDone || m.cancelled {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("chronosync login"))
	s.WriteString("\n")

	switch m.step {
	case stepUsername:
		s.WriteString(promptStyle.Render("Username:"))
		s.WriteString("\n")
		s.WriteString(inputStyle.Render("> " + m.input))
	case stepPassword:
		s.WriteString(promptStyle.Render("Password:"))
		s.WriteString("\n")
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len([]rune(m.input)))))
	}

	s.WriteString("\n\n")
	s.WriteString(mutedStyle.Render("Enter to continue, Esc to cancel"))
	s.WriteString("\n")
	return s.String()
}

// PromptCredentials runs the interactive login form for the missing fields of creds
func PromptCredentials(in io.Reader, out io.Writer, creds Credentials) (Credentials, error) {
	p := tea.NewProgram(newLoginPrompt(creds), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return Credentials{}, fmt.Errorf("login prompt: %w", err)
	}

	m, ok := final.(loginPrompt)
	if !ok {
		return Credentials{}, fmt.Errorf("login prompt returned unexpected model %T", final)
	}
	if m.cancelled {
		return Credentials{}, errPromptCancelled
	}
	return m.creds, nil
}
