package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	txtEmailPlaceholder    = "your@email.com"
	txtPasswordPlaceholder = "••••••••"
	txtLoginPrompt         = "Log in to Nodal"
	txtVerifying           = "Signing in..."
	txtInvalidEmail        = "Invalid email"
	txtEmptyPassword       = "Password cannot be empty"
	txtHelp                = "'Tab' to switch fields. 'Enter' to submit. 'Ctrl+C' to quit."
)

var (
	focusedStyle     = green
	helpStyle        = gray
	errorTextStyle   = red
	errorHeaderStyle = red.Bold(true)
	spinnerStyle     = cyan
	titleStyle       = cyan.Bold(true)
)

type loginTUIOpts struct {
	Email         string
	ServerURL     string
	ConfigPath    string
	SubmitHandler func(email, password string) error
}

type loginModel struct {
	opts *loginTUIOpts

	emailInput    textinput.Model
	passwordInput textinput.Model
	spinner       spinner.Model

	isLoading    bool
	succeeded    bool
	errorMessage string
}

type loginProcessedMsg struct{ err error }

func newLoginModel(opts *loginTUIOpts) loginModel {
	email := textinput.New()
	email.Placeholder = txtEmailPlaceholder
	email.CharLimit = 64
	email.Width = 48
	email.PromptStyle = focusedStyle
	email.TextStyle = focusedStyle
	email.PlaceholderStyle = helpStyle
	if opts.Email != "" {
		email.SetValue(opts.Email)
	}

	password := textinput.New()
	password.Placeholder = txtPasswordPlaceholder
	password.CharLimit = 128
	password.Width = 48
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.PromptStyle = focusedStyle
	password.TextStyle = focusedStyle
	password.PlaceholderStyle = helpStyle

	if opts.Email != "" {
		password.Focus()
	} else {
		email.Focus()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return loginModel{
		opts:          opts,
		emailInput:    email,
		passwordInput: password,
		spinner:       s,
	}
}

func (m loginModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.emailInput.Focused() {
			m.errorMessage = ""
			m.emailInput, cmd = m.emailInput.Update(msg)
			cmds = append(cmds, cmd)
		} else if m.passwordInput.Focused() {
			m.errorMessage = ""
			m.passwordInput, cmd = m.passwordInput.Update(msg)
			cmds = append(cmds, cmd)
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyTab, tea.KeyShiftTab:
			return m.toggleFocus()

		case tea.KeyEnter:
			if m.isLoading {
				return m, nil
			}
			if m.emailInput.Focused() {
				return m.toggleFocus()
			}
			return m.submit()
		}

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.spinner, spinnerCmd = m.spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case loginProcessedMsg:
		return m.handleLoginMsg(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m loginModel) toggleFocus() (tea.Model, tea.Cmd) {
	if m.emailInput.Focused() {
		m.emailInput.Blur()
		m.passwordInput.Focus()
	} else {
		m.passwordInput.Blur()
		m.emailInput.Focus()
	}
	return m, textinput.Blink
}

func (m loginModel) submit() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()

	if !strings.Contains(email, "@") {
		m.errorMessage = txtInvalidEmail
		return m, nil
	}
	if password == "" {
		m.errorMessage = txtEmptyPassword
		return m, nil
	}

	m.errorMessage = ""
	m.isLoading = true
	m.passwordInput.Blur()

	return m, func() tea.Msg {
		return loginProcessedMsg{err: m.opts.SubmitHandler(email, password)}
	}
}

func (m loginModel) handleLoginMsg(msg loginProcessedMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false

	if msg.err != nil {
		m.errorMessage = fmt.Sprintf("%s %s", errorHeaderStyle.Render("ERROR:"), msg.err.Error())
		m.passwordInput.SetValue("")
		m.passwordInput.Focus()
		return m, textinput.Blink
	}

	m.succeeded = true
	return m, tea.Quit
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(txtLoginPrompt))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Server  "), green.Render(m.opts.ServerURL)))
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Config  "), green.Render(m.opts.ConfigPath)))
	b.WriteString("\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())

	if m.isLoading {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), txtVerifying))
	}

	if m.errorMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(errorTextStyle.Render(m.errorMessage))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(txtHelp))
	b.WriteString("\n")

	return b.String()
}

// runLoginTUI starts the Bubble Tea login form and blocks until the user
// signs in or quits.
func runLoginTUI(opts loginTUIOpts) error {
	model, err := tea.NewProgram(newLoginModel(&opts)).Run()
	if err != nil {
		return fmt.Errorf("login prompt failed: %w", err)
	}

	if fm, ok := model.(loginModel); ok {
		if !fm.succeeded {
			return fmt.Errorf("login cancelled")
		}
	}

	return nil
}
