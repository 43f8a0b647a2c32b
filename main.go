package main

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"

	"trellis/internal/api"
	"trellis/internal/cache"
	"trellis/internal/config"
	"trellis/internal/logging"
	"trellis/internal/session"
	"trellis/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	apiURL := pflag.String("api-url", "", "backend API base URL (overrides TRELLIS_API_URL)")
	logLevel := pflag.String("log-level", "", "log level (overrides TRELLIS_LOG_LEVEL)")
	pflag.Parse()
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(cfg.Log.Level, logFile)

	sessionPath, err := session.DefaultPath()
	if err != nil {
		return err
	}
	sessions, err := session.NewStore(sessionPath)
	if err != nil {
		return err
	}

	client, err := api.NewClient(api.Config{
		BaseURL:    cfg.API.BaseURL,
		Tokens:     sessions,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	logger.Info().Str("api", cfg.API.BaseURL).Msg("starting")

	app := tui.New(tui.Options{
		API:      client,
		Sessions: sessions,
		Cache:    cache.NewStore(),
		Logger:   logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
