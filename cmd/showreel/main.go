package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"showreel/internal/config"
	"showreel/internal/discovery"
	"showreel/internal/eventbus"
	"showreel/internal/logic"
	"showreel/internal/media"
	"showreel/internal/telemetry"
	"showreel/internal/ui"
)

const imageCacheSize = 64

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: showreel [flags] [dir]\n\n")
	fmt.Fprintf(out, "Plays the images under dir as a background slideshow with a carousel\n")
	fmt.Fprintf(out, "of cards on top. Cards come from the config file, or from dir when the\n")
	fmt.Fprintf(out, "config lists none.\n\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	// Parse command line arguments
	var mediaDir, configPath string
	var compact bool
	flag.StringVar(&mediaDir, "dir", "", "Directory to scan for images")
	flag.StringVar(&mediaDir, "d", "", "Directory to scan for images (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.BoolVar(&compact, "compact", false, "Show one carousel item at a time")
	flag.Usage = usage
	flag.Parse()

	if mediaDir == "" && flag.NArg() > 0 {
		mediaDir = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("showreel.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath, bus)
	} else {
		configSvc = config.NewConfigServiceWithBus(bus)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if mediaDir != "" {
		cfg.MediaDir = mediaDir
	}
	if cfg.MediaDir == "" && len(cfg.Slideshow.Images) == 0 {
		if cfg.MediaDir, err = os.Getwd(); err != nil {
			fmt.Printf("Error getting current directory: %v\n", err)
			os.Exit(1)
		}
	}
	if cfg.MediaDir != "" {
		if cfg.MediaDir, err = filepath.Abs(cfg.MediaDir); err != nil {
			fmt.Printf("Error resolving path: %v\n", err)
			os.Exit(1)
		}
	}

	tp, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("Telemetry disabled: %v", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Printf("Failed to flush spans: %v", err)
		}
	}()

	loader, err := media.NewFileLoader(cfg.MediaDir, imageCacheSize)
	if err != nil {
		fmt.Printf("Error creating image loader: %v\n", err)
		os.Exit(1)
	}

	// Initialize services
	discoverySvc := discovery.NewDiscoveryService(bus)
	store := logic.NewMemoryMediaStore()

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, configSvc, loader, store)
	uiModel.SetCompact(compact)
	uiModel.SetTracer(tp.Tracer())
	uiModel.SetColorProfile(termenv.EnvColorProfile())

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseAllMotion())
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		p.Quit()
	}()

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventMediaDiscovered,
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventAutoAdvanceStopped,
		eventbus.EventSlideLoadFailed,
		eventbus.EventItemLoaded,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Start initial scan
	if cfg.MediaDir != "" {
		go func() {
			if err := discoverySvc.StartScan(ctx, []string{cfg.MediaDir}); err != nil {
				log.Printf("Initial scan failed: %v", err)
			}
		}()
	}

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Cleanup
	discoverySvc.StopScan()
	cancel()
}
