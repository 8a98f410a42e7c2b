package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/backend"
	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/logging"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logging.New(cfg.LogFile, "weather-terminal", Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	log.Info().
		Str("api", cfg.APIBaseURL).
		Str("geolocation", cfg.Geolocation).
		Bool("env_file", cfg.EnvFileLoaded).
		Msg("starting weather terminal")

	client := backend.NewHTTPClient(backend.HTTPConfig{
		BaseURL:           cfg.APIBaseURL,
		DefaultLocation:   cfg.DefaultLocation(),
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.RateLimit,
		Logger:            log,
	})

	locator, err := geolocation.New(geolocation.Options{
		Mode:    geolocation.Mode(cfg.Geolocation),
		URL:     cfg.GeolocationURL,
		Home:    cfg.HomeLocation(),
		Timeout: cfg.GeolocationTimeout,
		Logger:  log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model := ui.NewModel(ui.Options{
		Client:             client,
		Locator:            locator,
		Logger:             log,
		DefaultLocation:    cfg.DefaultLocation(),
		PastDays:           cfg.PastDays,
		Debounce:           cfg.Debounce,
		ErrorTimeout:       cfg.ErrorTimeout,
		GeolocationTimeout: cfg.GeolocationTimeout,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		fmt.Printf("Error running application: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
}
