package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"scrollpager/internal/domain"
	"scrollpager/internal/eventbus"
)

// Service loads pages requested over the event bus
type Service interface {
	Load(ctx context.Context, number int, direction domain.Direction) error
	Stop()
}

// service is the concrete implementation
type service struct {
	bus      eventbus.EventBus
	source   Source
	pageSize int
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[int]bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	unsub    func()
}

// NewService creates a feed service and subscribes it to page requests
func NewService(bus eventbus.EventBus, source Source, pageSize int, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &service{
		bus:      bus,
		source:   source,
		pageSize: pageSize,
		logger:   logger.With("component", "feed"),
		inflight: make(map[int]bool),
		ctx:      ctx,
		cancel:   cancel,
	}

	s.unsub = bus.Subscribe(eventbus.EventPageRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageRequestedEvent); ok {
			if err := s.Load(s.ctx, event.Page, event.Direction); err != nil {
				s.logger.Debug("page request skipped", "page", event.Page, "error", err)
			}
		}
	})

	return s
}

// Load fetches a page in the background and publishes the outcome.
// A page already being loaded is not requested twice.
func (s *service) Load(ctx context.Context, number int, direction domain.Direction) error {
	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return fmt.Errorf("feed stopped")
	}
	if s.inflight[number] {
		s.mu.Unlock()
		return fmt.Errorf("page %d already loading", number)
	}
	s.inflight[number] = true
	s.wg.Add(1)
	s.mu.Unlock()

	loadCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)

	go func() {
		defer s.wg.Done()
		defer stop()
		defer cancel()
		defer func() {
			s.mu.Lock()
			delete(s.inflight, number)
			s.mu.Unlock()
		}()

		start := time.Now()
		page, err := s.source.Page(loadCtx, number, s.pageSize)
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			s.logger.Error("page load failed", "page", number, "error", err)
			s.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("Failed to load page %d", number),
				Err:     err,
				Page:    number,
			})
			return
		}

		s.logger.Info("page loaded", "page", number, "records", len(page.Records),
			"last", page.IsLast, "duration_ms", time.Since(start).Milliseconds())
		s.bus.Publish(eventbus.PageLoadedEvent{Page: page, Direction: direction})
	}()

	return nil
}

// Stop cancels outstanding loads and waits for them to finish
func (s *service) Stop() {
	s.mu.Lock()
	s.cancel()
	if s.unsub != nil {
		s.unsub()
	}
	s.mu.Unlock()

	s.wg.Wait()
}
