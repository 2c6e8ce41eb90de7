// Package daemon provides the long-running calculation service: an HTTP API
// over the revenue engine and an event stream of recalculations.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/pipeline"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	Interval     time.Duration
	EventsBuffer int
	// Scenario is the active scenario watched by the poller.
	Scenario string
	// Clamp is the default for projections when a request doesn't say.
	Clamp bool
	// LoadCatalog is called on every poll and request so edits to
	// config.toml and saved scenarios are picked up without a restart.
	LoadCatalog func() (pipeline.Catalog, error)
	Logger      zerolog.Logger
}

// Snapshot is the active scenario's headline results.
type Snapshot struct {
	At               time.Time `json:"at"`
	Scenario         string    `json:"scenario"`
	Source           string    `json:"source"`
	GrossRevenue     float64   `json:"gross_revenue"`
	NetRevenue       float64   `json:"net_revenue"`
	AfterTaxRevenue  float64   `json:"after_tax_revenue"`
	ROI              float64   `json:"roi"`
	CompletionDays   float64   `json:"completion_days"`
	CompletionMonths int       `json:"completion_months"`
	BreakEvenMonth   int       `json:"break_even_month"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	GrossRevenue     float64 `json:"gross_revenue"`
	NetRevenue       float64 `json:"net_revenue"`
	AfterTaxRevenue  float64 `json:"after_tax_revenue"`
	ROI              float64 `json:"roi"`
	CompletionDays   float64 `json:"completion_days"`
	CompletionMonths int     `json:"completion_months"`
	BreakEvenMonth   int     `json:"break_even_month"`
}

func (d Delta) isZero() bool {
	return d.GrossRevenue == 0 &&
		d.NetRevenue == 0 &&
		d.AfterTaxRevenue == 0 &&
		d.ROI == 0 &&
		d.CompletionDays == 0 &&
		d.CompletionMonths == 0 &&
		d.BreakEvenMonth == 0
}

// Event types.
const (
	EventSnapshot     = "snapshot"
	EventResultsDelta = "results_delta"
)

// Event is emitted whenever the active scenario's results change.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	UptimeSec       int64     `json:"uptime_sec"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Scenario        string    `json:"scenario"`
	Clamp           bool      `json:"clamp"`
	Results         Snapshot  `json:"results"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	log zerolog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultConfig().Server.Addr
	}
	if cfg.Scenario == "" {
		cfg.Scenario = config.DefaultConfig().General.DefaultScenario
	}
	if cfg.LoadCatalog == nil {
		cfg.LoadCatalog = func() (pipeline.Catalog, error) {
			return pipeline.Catalog{Config: config.DefaultConfig()}, nil
		}
	}

	return &Service{
		cfg:       cfg,
		log:       cfg.Logger.With().Str("component", "daemon").Logger(),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Str("scenario", s.cfg.Scenario).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("shutdown initiated")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				s.log.Error().Err(err).Msg("graceful shutdown failed")
				return server.Close()
			}
			return nil
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	now := time.Now()
	snap, err := s.computeSnapshot(now)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn().Err(err).Str("scenario", s.cfg.Scenario).Msg("poll failed")
		return
	}

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      EventResultsDelta,
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug().Int64("event", ev.ID).Str("type", ev.Type).Msg("results changed")
		s.publishEvent(ev)
	}
}

func (s *Service) computeSnapshot(now time.Time) (Snapshot, error) {
	cat, err := s.cfg.LoadCatalog()
	if err != nil {
		return Snapshot{}, err
	}
	sc, err := cat.Lookup(s.cfg.Scenario)
	if err != nil {
		return Snapshot{}, err
	}
	rep, err := pipeline.Run(sc, pipeline.Options{Clamp: s.cfg.Clamp, Now: now})
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotFromReport(rep), nil
}

func snapshotFromReport(rep *pipeline.Report) Snapshot {
	r := rep.Results
	return Snapshot{
		At:               rep.GeneratedAt,
		Scenario:         rep.Scenario.Name,
		Source:           string(rep.Scenario.Source),
		GrossRevenue:     r.GrossRevenue,
		NetRevenue:       r.NetRevenue,
		AfterTaxRevenue:  r.AfterTaxRevenue,
		ROI:              r.ROI,
		CompletionDays:   r.CompletionDays,
		CompletionMonths: r.CompletionMonths,
		BreakEvenMonth:   rep.Summary.BreakEvenMonth,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		GrossRevenue:     curr.GrossRevenue - prev.GrossRevenue,
		NetRevenue:       curr.NetRevenue - prev.NetRevenue,
		AfterTaxRevenue:  curr.AfterTaxRevenue - prev.AfterTaxRevenue,
		ROI:              curr.ROI - prev.ROI,
		CompletionDays:   curr.CompletionDays - prev.CompletionDays,
		CompletionMonths: curr.CompletionMonths - prev.CompletionMonths,
		BreakEvenMonth:   curr.BreakEvenMonth - prev.BreakEvenMonth,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		UptimeSec:       int64(time.Since(s.startedAt).Seconds()),
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Scenario:        s.cfg.Scenario,
		Clamp:           s.cfg.Clamp,
		Results:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
