// Package daemon provides the long-running budget watcher service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/reconcile"
)

// Event types.
const (
	EventSnapshot       = "snapshot"
	EventStatusChange   = "status_change"
	EventInsightsChange = "insights_change"
)

// Fetcher loads the inputs the watcher reconciles. *api.Client satisfies it.
type Fetcher interface {
	FetchBudgetInputs(ctx context.Context) (reconcile.Inputs, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	// Month pins the watched month. Empty follows the calendar.
	Month        model.Month
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Logger       *log.Logger
}

// CategoryStatus is one category's standing in a snapshot.
type CategoryStatus struct {
	Category   model.Category `json:"category"`
	Budget     float64        `json:"budget"`
	Actual     float64        `json:"actual"`
	Percentage int            `json:"percentage"`
	Status     model.Status   `json:"status"`
}

// Snapshot is the reconciled state of one poll.
type Snapshot struct {
	At          time.Time        `json:"at"`
	Month       model.Month      `json:"month"`
	Categories  []CategoryStatus `json:"categories"`
	Good        int              `json:"good"`
	Warning     int              `json:"warning"`
	Over        int              `json:"over"`
	OverBudget  int              `json:"over_budget_flags"`
	TotalBudget float64          `json:"total_budget"`
	TotalActual float64          `json:"total_actual"`
	Insights    []model.Insight  `json:"insights"`
}

// Change records a category moving between statuses.
type Change struct {
	Category model.Category `json:"category"`
	From     model.Status   `json:"from,omitempty"`
	To       model.Status   `json:"to,omitempty"`
}

// Event is emitted whenever the watched state changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Changes   []Change  `json:"changes,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Month           string    `json:"month,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	fetcher Fetcher
	logger  *log.Logger
	now     func() time.Time

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

// New returns a new daemon service polling f.
func New(cfg Config, f Fetcher) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Service{
		cfg:       cfg,
		fetcher:   f,
		logger:    logger,
		now:       time.Now,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
	return r
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
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("daemon listening", "addr", s.cfg.Addr, "interval", s.cfg.Interval)

	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) month(now time.Time) model.Month {
	if s.cfg.Month != "" {
		return s.cfg.Month
	}
	return model.MonthOf(now)
}

func (s *Service) pollOnce(ctx context.Context) {
	start := s.now()
	in, err := s.fetcher.FetchBudgetInputs(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = s.now()
		s.pollCount++
		s.mu.Unlock()
		s.logger.Error("poll failed", "err", err)
		return
	}

	now := s.now()
	snap := snapshotFromView(reconcile.Build(in, s.month(now)), in.Flags, now)

	var events []Event

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	switch {
	case !prevExists || prev.Month != snap.Month:
		events = append(events, s.newEventLocked(EventSnapshot, now, snap, nil))
	default:
		if changes := diffSnapshots(prev, snap); len(changes) > 0 {
			events = append(events, s.newEventLocked(EventStatusChange, now, snap, changes))
		}
		if !slices.Equal(prev.Insights, snap.Insights) {
			events = append(events, s.newEventLocked(EventInsightsChange, now, snap, nil))
		}
	}
	s.mu.Unlock()

	for _, ev := range events {
		s.publishEvent(ev)
	}
	s.logger.Debug("poll", "month", snap.Month, "categories", len(snap.Categories),
		"events", len(events), "took", s.now().Sub(start).Round(time.Millisecond))
}

func (s *Service) newEventLocked(typ string, at time.Time, snap Snapshot, changes []Change) Event {
	s.nextEventID++
	return Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: at,
		Snapshot:  snap,
		Changes:   changes,
	}
}

func snapshotFromView(v reconcile.View, flags []model.OverBudgetFlag, at time.Time) Snapshot {
	snap := Snapshot{
		At:         at,
		Month:      v.Month,
		Categories: make([]CategoryStatus, 0, len(v.Comparisons)),
		Insights:   v.Insights,
	}
	for _, c := range v.Comparisons {
		snap.Categories = append(snap.Categories, CategoryStatus{
			Category:   c.Category,
			Budget:     c.Budget,
			Actual:     c.Actual,
			Percentage: c.Percentage,
			Status:     c.Status,
		})
	}
	counts := v.CountByStatus()
	snap.Good = counts[model.StatusGood]
	snap.Warning = counts[model.StatusWarning]
	snap.Over = counts[model.StatusOver]
	snap.TotalBudget, snap.TotalActual = v.Totals()
	for _, f := range flags {
		if f.Exceeded() {
			snap.OverBudget++
		}
	}
	return snap
}

// diffSnapshots lists categories whose status differs between prev and
// curr, including ones that appeared or disappeared. A category with
// several budgets in a month is compared by its first entry.
func diffSnapshots(prev, curr Snapshot) []Change {
	before := statusByCategory(prev)
	after := statusByCategory(curr)
	seen := make(map[model.Category]bool, len(after))

	var changes []Change
	for _, c := range curr.Categories {
		if seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		from, had := before[c.Category]
		if to := after[c.Category]; !had || from != to {
			changes = append(changes, Change{Category: c.Category, From: from, To: to})
		}
	}
	for _, c := range prev.Categories {
		if seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		changes = append(changes, Change{Category: c.Category, From: before[c.Category]})
	}
	return changes
}

func statusByCategory(s Snapshot) map[model.Category]model.Status {
	m := make(map[model.Category]model.Status, len(s.Categories))
	for _, c := range s.Categories {
		if _, ok := m[c.Category]; !ok {
			m[c.Category] = c.Status
		}
	}
	return m
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
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Month:           string(s.cfg.Month),
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
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
