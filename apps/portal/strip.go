package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motbey/mylms/client"
	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
	"github.com/motbey/mylms/core/tile"
)

// stripModel is the favorites strip. It renders a local copy of the
// canonical list so a drag can show its new order before the store has
// confirmed it: grab a tile with space, move it with the arrow keys,
// drop it with space again. The drop submits the complete order; until
// the store answers, the strip is dimmed and canonical changes are held
// back. A failed save snaps the strip back to the canonical order.
type stripModel struct {
	state   *client.State
	gateway client.GatewayInterface
	logger  core.Logger
	keys    keyMap
	styles  styles

	entries []favorite.Favorite
	cursor  int
	grabbed bool
	saving  bool
	// stale marks a canonical change that arrived mid-save; the strip
	// reseeds from it once the save settles.
	stale bool

	focused bool
	spin    spinner.Model
}

type reorderResultMsg struct {
	order []string
	err   error
}

func newStrip(state *client.State, gateway client.GatewayInterface, keys keyMap, st styles, logger core.Logger) stripModel {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = st.star

	s := stripModel{
		state:   state,
		gateway: gateway,
		logger:  logger,
		keys:    keys,
		styles:  st,
		spin:    spin,
	}
	s.reseed()
	return s
}

func (s stripModel) Update(msg tea.Msg) (stripModel, tea.Cmd) {
	switch msg := msg.(type) {
	case canonicalChangedMsg:
		s.reseed()
		return s, nil

	case reorderResultMsg:
		return s.finishSave(msg)

	case spinner.TickMsg:
		if !s.saving {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if !s.focused || s.saving {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s stripModel) handleKey(msg tea.KeyMsg) (stripModel, tea.Cmd) {
	vis := s.visible()
	if len(vis) == 0 {
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.Left):
		if s.grabbed {
			s.move(vis, -1)
		} else if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, s.keys.Right):
		if s.grabbed {
			s.move(vis, +1)
		} else if s.cursor < len(vis)-1 {
			s.cursor++
		}
	case key.Matches(msg, s.keys.Grab):
		if s.grabbed {
			return s.drop()
		}
		s.grabbed = true
	case key.Matches(msg, s.keys.Unpin):
		if s.grabbed {
			return s, nil
		}
		slug := s.entries[vis[s.cursor]].Slug
		return s, unpinCmd(s.state, slug)
	case key.Matches(msg, s.keys.Open):
		if s.grabbed {
			return s, nil
		}
		if t, ok := tile.Get(s.entries[vis[s.cursor]].Slug); ok {
			return s, openCmd(t)
		}
	}
	return s, nil
}

// move splices the grabbed tile one visible slot left or right. Entries
// whose tile no longer exists are skipped over, never reordered across
// the move; the submitted order still contains them.
func (s *stripModel) move(vis []int, dir int) {
	target := s.cursor + dir
	if target < 0 || target >= len(vis) {
		return
	}

	from, insertAt := vis[s.cursor], vis[target]
	entry := s.entries[from]

	rest := make([]favorite.Favorite, 0, len(s.entries)-1)
	rest = append(rest, s.entries[:from]...)
	rest = append(rest, s.entries[from+1:]...)

	out := make([]favorite.Favorite, 0, len(s.entries))
	out = append(out, rest[:insertAt]...)
	out = append(out, entry)
	out = append(out, rest[insertAt:]...)

	s.entries = out
	s.cursor = target
}

// drop ends the drag. An unchanged order never hits the network; a
// changed one is submitted while the strip already shows it.
func (s stripModel) drop() (stripModel, tea.Cmd) {
	s.grabbed = false

	order := favorite.Slugs(s.entries)
	if equalOrder(order, favorite.Slugs(s.state.Favorites())) {
		return s, nil
	}

	s.saving = true
	return s, tea.Batch(reorderCmd(s.gateway, order), s.spin.Tick)
}

func (s stripModel) finishSave(msg reorderResultMsg) (stripModel, tea.Cmd) {
	s.saving = false
	if msg.err != nil {
		s.logger.Warn(fmt.Sprintf("saving favorites order: %v", msg.err))
		// revert to what the store holds now, not to the pre-drag copy
		s.stale = false
		s.reseed()
		return s, nil
	}
	if s.stale {
		s.stale = false
		s.reseed()
	}
	return s, nil
}

// reseed replaces the local copy with the canonical list. During a save
// the reseed is deferred so the optimistic order stays on screen.
func (s *stripModel) reseed() {
	if s.saving {
		s.stale = true
		return
	}
	s.entries = s.state.Favorites()
	s.grabbed = false
	for _, fav := range s.entries {
		if _, ok := tile.Get(fav.Slug); !ok {
			s.logger.Warn(fmt.Sprintf("favorite %q has no tile; hidden from the strip", fav.Slug))
		}
	}
	if max := len(s.visible()) - 1; s.cursor > max {
		if max < 0 {
			max = 0
		}
		s.cursor = max
	}
}

// visible returns the indexes of entries whose slug resolves in the
// tile registry, in strip order.
func (s stripModel) visible() []int {
	vis := make([]int, 0, len(s.entries))
	for i, fav := range s.entries {
		if _, ok := tile.Get(fav.Slug); ok {
			vis = append(vis, i)
		}
	}
	return vis
}

func (s stripModel) View() string {
	if s.state.Loading() {
		return s.styles.placeholder.Render("loading favourites…")
	}
	if len(s.entries) == 0 {
		return s.styles.empty.Render(
			fmt.Sprintf("No favourites yet. Pin up to %d tiles with p.", favorite.MaxFavorites))
	}

	vis := s.visible()
	if len(vis) == 0 {
		return s.styles.empty.Render("No favourites to show.")
	}

	boxes := make([]string, 0, len(vis))
	for i, idx := range vis {
		fav := s.entries[idx]
		label := fav.Label
		if label == "" {
			label = tile.Label(fav.Slug)
		}
		style := s.styles.tile
		switch {
		case s.grabbed && i == s.cursor:
			style = s.styles.tileGrabbed
		case s.focused && i == s.cursor:
			style = s.styles.tileSelected
		}
		boxes = append(boxes, style.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)

	switch {
	case s.saving:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.styles.dim.Render(row),
			s.styles.hint.Render(s.spin.View()+"saving order…"),
		)
	case s.grabbed:
		return lipgloss.JoinVertical(lipgloss.Left,
			row,
			s.styles.hint.Render("←/→ move · space drop"),
		)
	}
	return row
}

func equalOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func reorderCmd(gateway client.GatewayInterface, order []string) tea.Cmd {
	return func() tea.Msg {
		return reorderResultMsg{order: order, err: gateway.Reorder(context.Background(), order)}
	}
}

func unpinCmd(state *client.State, slug string) tea.Cmd {
	return func() tea.Msg {
		state.Unfavourite(context.Background(), slug)
		return nil
	}
}
