package main

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motbey/mylms/client"
)

type loginModel struct {
	session *client.Session
	styles  styles

	username   textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errText    string
}

type loginResultMsg struct {
	err error
}

func newLogin(session *client.Session, st styles) loginModel {
	username := textinput.New()
	username.Placeholder = "username or email"
	username.CharLimit = 150
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 150
	password.Width = 32

	return loginModel{
		session:  session,
		styles:   st,
		username: username,
		password: password,
	}
}

func (l loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		l.submitting = false
		if msg.err != nil {
			l.errText = msg.err.Error()
			l.password.SetValue("")
		}
		return l, nil

	case tea.KeyMsg:
		if l.submitting {
			return l, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			l.focus = (l.focus + 1) % 2
			if l.focus == 0 {
				l.password.Blur()
				return l, l.username.Focus()
			}
			l.username.Blur()
			return l, l.password.Focus()
		case "enter":
			if l.username.Value() == "" || l.password.Value() == "" {
				l.errText = "username and password are required"
				return l, nil
			}
			l.submitting = true
			l.errText = ""
			return l, loginCmd(l.session, l.username.Value(), l.password.Value())
		}
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.username, cmd = l.username.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

func (l loginModel) View() string {
	status := "enter to sign in · tab to switch fields"
	if l.submitting {
		status = "signing in…"
	}

	lines := []string{
		l.styles.inputLabel.Render("Sign in"),
		"",
		l.username.View(),
		l.password.View(),
		"",
		l.styles.hint.Render(status),
	}
	if l.errText != "" {
		lines = append(lines, l.styles.errText.Render(l.errText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func loginCmd(session *client.Session, username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: session.Login(context.Background(), username, password)}
	}
}
