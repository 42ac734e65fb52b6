package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/motbey/mylms/client"
	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/tile"
)

type screen int

const (
	screenLogin screen = iota
	screenHome
)

type focusArea int

const (
	focusGrid focusArea = iota
	focusStrip
)

// canonicalChangedMsg reports that the shared favorites state replaced
// its list; surfaces reseed from it.
type canonicalChangedMsg struct{}

type navigateMsg struct {
	path string
}

// App is the portal root model: a login screen, then the favorites
// strip above the tile grid. Both consume the same shared state, so a
// pin made on the grid shows up on the strip without any coupling
// between the two.
type App struct {
	conf    *core.Config
	session *client.Session
	state   *client.State
	logger  core.Logger
	keys    keyMap
	styles  styles

	screen screen
	focus  focusArea
	width  int
	height int

	login loginModel
	grid  gridModel
	strip stripModel
	toast toastModel
	route string

	changes    chan struct{}
	unsubState func()
}

var _ tea.Model = App{}

func newApp(conf *core.Config, session *client.Session, gateway client.GatewayInterface, state *client.State, logger core.Logger) App {
	keys := newKeyMap()
	st := newStyles()

	a := App{
		conf:    conf,
		session: session,
		state:   state,
		logger:  logger,
		keys:    keys,
		styles:  st,
		login:   newLogin(session, st),
		grid:    newGrid(state, gateway, keys, st),
		strip:   newStrip(state, gateway, keys, st, logger),
		changes: make(chan struct{}, 1),
	}
	if session.SignedIn() {
		a.screen = screenHome
	}
	a.grid.focused = true

	// state notifies on whatever goroutine refreshed it; the buffered
	// channel hands the signal to the update loop without blocking the
	// notifier
	changes := a.changes
	a.unsubState = state.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	return a
}

func (a App) Close() {
	if a.unsubState != nil {
		a.unsubState()
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{listenForChange(a.changes), textinput.Blink}
	if a.screen == screenHome {
		cmds = append(cmds, refreshCmd(a.state))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case canonicalChangedMsg:
		var cmd tea.Cmd
		a.strip, cmd = a.strip.Update(msg)
		return a, tea.Batch(listenForChange(a.changes), cmd)

	case toastTimeoutMsg:
		a.toast.dismiss(msg)
		return a, nil

	case navigateMsg:
		a.route = msg.path
		return a, nil

	case loginResultMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err == nil {
			a.screen = screenHome
			return a, tea.Batch(cmd, refreshCmd(a.state))
		}
		return a, cmd

	case reorderResultMsg:
		var cmd tea.Cmd
		a.strip, cmd = a.strip.Update(msg)
		if msg.err != nil {
			return a, tea.Batch(cmd, a.toast.show(toastText(msg.err)))
		}
		return a, cmd

	case pinResultMsg:
		if msg.err != nil {
			return a, a.toast.show(toastText(msg.err))
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.strip, cmd = a.strip.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.screen == screenLogin {
		// cursor blinks and the like
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.screen == screenLogin {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	// a grab owns the keyboard until the tile is dropped
	if a.strip.grabbed {
		var cmd tea.Cmd
		a.strip, cmd = a.strip.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.SignOut):
		a.session.Logout()
		a.login = newLogin(a.session, a.styles)
		a.screen = screenLogin
		a.route = ""
		return a, textinput.Blink
	case key.Matches(msg, a.keys.Focus):
		a.toggleFocus()
		return a, nil
	}

	var cmd tea.Cmd
	if a.focus == focusStrip {
		a.strip, cmd = a.strip.Update(msg)
	} else {
		a.grid, cmd = a.grid.Update(msg)
	}
	return a, cmd
}

func (a *App) toggleFocus() {
	if a.focus == focusGrid {
		a.focus = focusStrip
	} else {
		a.focus = focusGrid
	}
	a.grid.focused = a.focus == focusGrid
	a.strip.focused = a.focus == focusStrip
}

func (a App) View() string {
	if a.screen == screenLogin {
		content := a.login.View()
		if a.width > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
		}
		return content
	}

	sections := []string{
		a.styles.title.Render(a.conf.AppName + " admin portal"),
		a.styles.section.Render("Favourites"),
		a.strip.View(),
		a.styles.section.Render("Tiles"),
		a.grid.View(),
	}

	status := make([]string, 0, 2)
	if a.route != "" {
		status = append(status, a.styles.route.Render("→ "+a.route))
	}
	if a.toast.visible() {
		status = append(status, a.styles.toast.Render(a.toast.text))
	}
	if len(status) > 0 {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, status...))
	}

	sections = append(sections, a.styles.hint.Render(a.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) helpLine() string {
	parts := []string{"tab focus", "←→↑↓ move", "enter open"}
	if a.focus == focusGrid {
		parts = append(parts, "p pin/unpin")
	} else {
		parts = append(parts, "space grab/drop", "u unpin")
	}
	parts = append(parts, "ctrl+d sign out", "q quit")
	return strings.Join(parts, " · ")
}

// listenForChange blocks until the next canonical-change signal and
// delivers it as a message; its handler re-arms it.
func listenForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return canonicalChangedMsg{}
	}
}

func refreshCmd(state *client.State) tea.Cmd {
	return func() tea.Msg {
		state.Refresh(context.Background())
		return nil
	}
}

func openCmd(t tile.Tile) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: t.Path}
	}
}

// toastText extracts the line worth showing for a failed store call.
func toastText(err error) string {
	if cerr, ok := errors.Cause(err).(*core.ConflictError); ok && cerr.Err != nil {
		return cerr.Err.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "something went wrong, please retry"
}
