package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title        lipgloss.Style
	section      lipgloss.Style
	tile         lipgloss.Style
	tileSelected lipgloss.Style
	tileGrabbed  lipgloss.Style
	star         lipgloss.Style
	dim          lipgloss.Style
	empty        lipgloss.Style
	placeholder  lipgloss.Style
	route        lipgloss.Style
	toast        lipgloss.Style
	hint         lipgloss.Style
	errText      lipgloss.Style
	inputLabel   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("243")).
			MarginTop(1),
		tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(18),
		tileSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1).
			Width(18),
		tileGrabbed: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("214")).
			Padding(0, 1).
			Width(18),
		star: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		dim: lipgloss.NewStyle().
			Faint(true),
		empty: lipgloss.NewStyle().
			Faint(true).
			Italic(true).
			Padding(0, 1),
		placeholder: lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1),
		route: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1),
		toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		hint: lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1),
		errText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")),
		inputLabel: lipgloss.NewStyle().
			Bold(true),
	}
}
