package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/backend"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/logging"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

// This demo runs the dashboard against generated data, no backend needed
func main() {
	logFile := flag.String("log-file", "", "write JSON logs to this file")
	locateHome := flag.Bool("locate", true, "report London as the current position")
	flag.Parse()

	log, closer, err := logging.New(*logFile, "weather-terminal-demo", "demo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	client := backend.NewStaticClient()

	var locator geolocation.Locator = geolocation.Disabled{}
	if *locateHome {
		locator = geolocation.StaticLocator{Coordinates: client.Places[2].Coordinates()}
	}

	model := ui.NewModel(ui.Options{
		Client:  client,
		Locator: locator,
		Logger:  log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
}
