package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/ironlog/tui/internal/app"
	"github.com/ironlog/tui/internal/client"
	"github.com/ironlog/tui/internal/config"
	"github.com/ironlog/tui/internal/logging"
	"github.com/ironlog/tui/internal/notify"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional; env vars also work)")
	wsURL := flag.String("url", "", "WebSocket URL of the IronLog server (overrides config)")
	flag.Parse()

	if *wsURL != "" {
		os.Setenv("IRONLOG_WS_URL", *wsURL)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ch := client.NewChannel(cfg.Server.WSURL)
	api := client.NewHTTPClient(cfg.Server.APIURL, cfg.Server.Token)

	m := app.New(ch, api, notify.Bell{}, cfg.Timer.DefaultBreakSeconds)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())

	log.Info().Str("ws_url", cfg.Server.WSURL).Msg("starting ironlog tui")
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
