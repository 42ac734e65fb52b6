package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/motbey/mylms/client"
	"github.com/motbey/mylms/core"
	logsvc "github.com/motbey/mylms/services/logger"
)

func main() {
	conf := core.NewConfig()

	// the alt screen owns the terminal, so logs go to a file
	logPath := filepath.Join(os.TempDir(), "mylms-portal.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening %s: %v\n", logPath, err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := logsvc.NewRollbarLogger(
		log.New(logFile, "PORTAL : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	hub := client.NewHub()
	session := client.NewSession(conf, logger)
	gateway := client.NewGateway(conf, session, hub, logger)
	state := client.NewState(gateway, hub, session, logger)
	defer state.Close()

	app := newApp(conf, session, gateway, state, logger)
	defer app.Close()

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("Portal crashed", err)
	}
}
