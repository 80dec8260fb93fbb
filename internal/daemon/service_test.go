package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/reconcile"
)

type fakeFetcher struct {
	inputs []reconcile.Inputs
	err    error
	calls  int
}

func (f *fakeFetcher) FetchBudgetInputs(context.Context) (reconcile.Inputs, error) {
	if f.err != nil {
		return reconcile.Inputs{}, f.err
	}
	in := f.inputs[min(f.calls, len(f.inputs)-1)]
	f.calls++
	return in, nil
}

func marchInputs(foodSpent float64) reconcile.Inputs {
	return reconcile.Inputs{
		Budgets: []model.BudgetEntry{
			{ID: "b1", Category: "Food", Month: "March", TotalBudget: 500},
			{ID: "b2", Category: "Rent", Month: "March", TotalBudget: 1000},
		},
		Expenses: []model.CategoryExpense{
			{Category: "Food", Total: foodSpent},
			{Category: "Rent", Total: 700},
		},
	}
}

func newTestService(f Fetcher) *Service {
	s := New(Config{Month: "March", Interval: 10 * time.Second}, f)
	s.now = func() time.Time { return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Categories: []CategoryStatus{
		{Category: "Food", Status: model.StatusGood},
		{Category: "Rent", Status: model.StatusOver},
		{Category: "Travel", Status: model.StatusGood},
	}}
	curr := Snapshot{Categories: []CategoryStatus{
		{Category: "Food", Status: model.StatusWarning},
		{Category: "Rent", Status: model.StatusOver},
		{Category: "Bills", Status: model.StatusGood},
	}}

	changes := diffSnapshots(prev, curr)
	want := []Change{
		{Category: "Food", From: model.StatusGood, To: model.StatusWarning},
		{Category: "Bills", To: model.StatusGood},
		{Category: "Travel", From: model.StatusGood},
	}
	if len(changes) != len(want) {
		t.Fatalf("changes = %+v, want %+v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("changes[%d] = %+v, want %+v", i, changes[i], want[i])
		}
	}

	if got := diffSnapshots(curr, curr); len(got) != 0 {
		t.Fatalf("identical snapshots produced changes %+v", got)
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, &fakeFetcher{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollEmitsSnapshotThenChanges(t *testing.T) {
	f := &fakeFetcher{inputs: []reconcile.Inputs{
		marchInputs(100),
		marchInputs(100),
		marchInputs(450),
	}}
	s := newTestService(f)
	ctx := context.Background()

	s.pollOnce(ctx)
	s.pollOnce(ctx)
	s.pollOnce(ctx)

	s.mu.RLock()
	events := append([]Event(nil), s.events...)
	snap := s.snapshot
	s.mu.RUnlock()

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3: %+v", len(events), events)
	}
	if events[0].Type != EventSnapshot {
		t.Fatalf("first event type = %q, want %q", events[0].Type, EventSnapshot)
	}
	if events[1].Type != EventStatusChange {
		t.Fatalf("second event type = %q, want %q", events[1].Type, EventStatusChange)
	}
	if len(events[1].Changes) != 1 || events[1].Changes[0].To != model.StatusWarning {
		t.Fatalf("status change = %+v, want Food -> warning", events[1].Changes)
	}
	if events[2].Type != EventInsightsChange {
		t.Fatalf("third event type = %q, want %q", events[2].Type, EventInsightsChange)
	}

	if snap.Warning != 1 || snap.Good != 1 || snap.Over != 0 {
		t.Fatalf("counts good=%d warning=%d over=%d, want 1/1/0", snap.Good, snap.Warning, snap.Over)
	}
	if snap.TotalBudget != 1500 || snap.TotalActual != 1150 {
		t.Fatalf("totals = %.0f/%.0f, want 1500/1150", snap.TotalBudget, snap.TotalActual)
	}
}

func TestPollErrorKeepsLastSnapshot(t *testing.T) {
	f := &fakeFetcher{inputs: []reconcile.Inputs{marchInputs(100)}}
	s := newTestService(f)
	s.pollOnce(context.Background())

	f.err = errors.New("connection refused")
	s.pollOnce(context.Background())

	st := s.snapshotStatus()
	if st.LastError != "connection refused" {
		t.Fatalf("LastError = %q", st.LastError)
	}
	if st.PollCount != 2 {
		t.Fatalf("PollCount = %d, want 2", st.PollCount)
	}
	if len(st.Summary.Categories) != 2 {
		t.Fatalf("summary lost after failed poll: %+v", st.Summary)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestService(&fakeFetcher{inputs: []reconcile.Inputs{marchInputs(600)}})
	s.pollOnce(context.Background())

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Summary.Month != "March" || st.Summary.Over != 1 {
		t.Fatalf("summary = %+v, want March with one over-budget category", st.Summary)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz = %d", resp.StatusCode)
	}
}
