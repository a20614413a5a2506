package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scrollpager/internal/config"
	"scrollpager/internal/eventbus"
	"scrollpager/internal/feed"
	"scrollpager/internal/logging"
	"scrollpager/internal/ui"
)

// syntheticPages is the size of the generated feed used without a source file
const syntheticPages = 40

type flags struct {
	configPath string
	source     string
	page       int
	size       int
	buffer     int
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to the config file")
	flag.StringVar(&f.source, "file", "", "Text file to page through")
	flag.StringVar(&f.source, "f", "", "Text file to page through (shorthand)")
	flag.IntVar(&f.page, "page", 0, "Page to start at")
	flag.IntVar(&f.page, "p", 0, "Page to start at (shorthand)")
	flag.IntVar(&f.size, "size", 0, "Records per page")
	flag.IntVar(&f.size, "s", 0, "Records per page (shorthand)")
	flag.IntVar(&f.buffer, "buffer", 0, "Rows from either edge that trigger a page load")
	flag.Parse()

	// If no file specified, check for remaining args
	if f.source == "" && flag.NArg() > 0 {
		f.source = flag.Arg(0)
	}
	return f
}

// apply overrides config values with the flags that were set
func (f flags) apply(cfg *config.Config) error {
	if f.source != "" {
		cfg.Source = f.source
	}
	if f.page > 0 {
		cfg.StartPage = f.page
	}
	if f.size > 0 {
		cfg.PageSize = f.size
	}
	if f.buffer > 0 {
		cfg.Scroll.LoadBuffer = f.buffer
	}
	return cfg.Validate()
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	bootstrap := config.NewConfigService(f.configPath)
	cfg, err := bootstrap.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	_, statErr := os.Stat(bootstrap.Path())
	hasExistingConfig := statErr == nil

	if err := f.apply(cfg); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(logger.WithComponent("eventbus").Logger)
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(bootstrap.Path(), bus)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			logger.Info("config saved", "path", event.Path)
		}
	})

	bus.Subscribe(eventbus.EventPageRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageRequestedEvent); ok {
			logger.Paging("page requested", event.Page, "direction", event.Direction)
		}
	})

	source, err := openSource(cfg)
	if err != nil {
		return err
	}
	feedSvc := feed.NewService(bus, source, cfg.PageSize, logger.Logger)
	defer feedSvc.Stop()

	logger.Info("starting", "source", cfg.Source, "start_page", cfg.StartPage,
		"page_size", cfg.PageSize, "load_buffer", cfg.Scroll.LoadBuffer, "existing_config", hasExistingConfig)

	uiModel := ui.NewModel(bus, cfg, ui.Options{
		ConfigService: configSvc,
		Logger:        logger.Logger,
		ReadyMarker:   os.Getenv("SCROLLPAGER_E2E_TEST") == "1",
	})

	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Forward load results to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	bus.Subscribe(eventbus.EventPageLoaded, forward)
	bus.Subscribe(eventbus.EventError, forward)

	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("program failed", "error", err)
		return fmt.Errorf("running program: %w", err)
	}
	cancel()
	logger.Info("exited normally")
	return nil
}

func openSource(cfg *config.Config) (feed.Source, error) {
	if cfg.Source == "" {
		return feed.NewSyntheticSource(syntheticPages, 150*time.Millisecond), nil
	}
	return feed.OpenFile(cfg.Source)
}
