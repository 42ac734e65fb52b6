package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastTTL is how long a toast stays up before auto-dismissing.
const toastTTL = 4 * time.Second

type toastTimeoutMsg struct {
	seq int
}

// toastModel is a single transient message line. Every show bumps seq
// so a timeout scheduled for an older toast cannot dismiss a newer one.
type toastModel struct {
	text string
	seq  int
}

func (t *toastModel) show(text string) tea.Cmd {
	t.text = text
	t.seq++
	seq := t.seq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastTimeoutMsg{seq: seq}
	})
}

func (t *toastModel) dismiss(msg toastTimeoutMsg) {
	if msg.seq == t.seq {
		t.text = ""
	}
}

func (t *toastModel) visible() bool {
	return t.text != ""
}
