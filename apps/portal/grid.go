package main

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motbey/mylms/client"
	"github.com/motbey/mylms/core/tile"
)

const gridCols = 3

// gridModel shows every registered tile. p pins the hovered tile to the
// strip, or unpins it when it is already there; pinned tiles carry a
// star.
type gridModel struct {
	state   *client.State
	gateway client.GatewayInterface
	keys    keyMap
	styles  styles

	tiles   []tile.Tile
	cursor  int
	focused bool
}

type pinResultMsg struct {
	slug string
	err  error
}

func newGrid(state *client.State, gateway client.GatewayInterface, keys keyMap, st styles) gridModel {
	return gridModel{
		state:   state,
		gateway: gateway,
		keys:    keys,
		styles:  st,
		tiles:   tile.All(),
	}
}

func (g gridModel) Update(msg tea.Msg) (gridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !g.focused {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, g.keys.Left):
		if g.cursor%gridCols > 0 {
			g.cursor--
		}
	case key.Matches(keyMsg, g.keys.Right):
		if g.cursor%gridCols < gridCols-1 && g.cursor < len(g.tiles)-1 {
			g.cursor++
		}
	case key.Matches(keyMsg, g.keys.Up):
		if g.cursor-gridCols >= 0 {
			g.cursor -= gridCols
		}
	case key.Matches(keyMsg, g.keys.Down):
		if g.cursor+gridCols < len(g.tiles) {
			g.cursor += gridCols
		}
	case key.Matches(keyMsg, g.keys.Pin):
		t := g.tiles[g.cursor]
		if g.state.IsFavorite(t.Slug) {
			return g, unpinCmd(g.state, t.Slug)
		}
		// the registry label rides along as the snapshot shown on the strip
		return g, pinCmd(g.gateway, t.Slug, t.Label)
	case key.Matches(keyMsg, g.keys.Open):
		return g, openCmd(g.tiles[g.cursor])
	}
	return g, nil
}

func (g gridModel) View() string {
	rows := make([]string, 0, (len(g.tiles)+gridCols-1)/gridCols)
	for start := 0; start < len(g.tiles); start += gridCols {
		end := start + gridCols
		if end > len(g.tiles) {
			end = len(g.tiles)
		}

		boxes := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			t := g.tiles[i]
			label := t.Label
			if g.state.IsFavorite(t.Slug) {
				label = g.styles.star.Render("★ ") + label
			}
			style := g.styles.tile
			if g.focused && i == g.cursor {
				style = g.styles.tileSelected
			}
			boxes = append(boxes, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func pinCmd(gateway client.GatewayInterface, slug, label string) tea.Cmd {
	return func() tea.Msg {
		return pinResultMsg{slug: slug, err: gateway.Add(context.Background(), slug, label)}
	}
}
