package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	noop := func(ctx context.Context, args json.RawMessage) error { return nil }

	if err := registry.Register("jobs.test", noop); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Duplicate registration is a programming error
	if err := registry.Register("jobs.test", noop); err == nil {
		t.Error("duplicate Register did not fail")
	}

	if _, ok := registry.Handler("jobs.test"); !ok {
		t.Error("Handler did not find registered job")
	}
	if _, ok := registry.Handler("jobs.missing"); ok {
		t.Error("Handler found unregistered job")
	}
}

func TestScheduler_UnknownJobFailsFast(t *testing.T) {
	scheduler := NewInProcessScheduler(NewRegistry(), testLogger())

	_, err := scheduler.Schedule(context.Background(), "jobs.unknown", nil, 0)
	if err == nil {
		t.Fatal("scheduling unknown job did not fail")
	}
}

func TestScheduler_RunsJobWithPayload(t *testing.T) {
	registry := NewRegistry()

	type payload struct {
		Value string `json:"value"`
	}

	var mu sync.Mutex
	var got payload
	err := registry.Register("jobs.echo", func(ctx context.Context, args json.RawMessage) error {
		var p payload
		if err := json.Unmarshal(args, &p); err != nil {
			return err
		}
		mu.Lock()
		got = p
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	scheduler := NewInProcessScheduler(registry, testLogger())
	jobID, err := scheduler.Schedule(context.Background(), "jobs.echo", payload{Value: "hello"}, 0)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if jobID == "" {
		t.Error("empty job id")
	}

	scheduler.Wait()

	mu.Lock()
	defer mu.Unlock()
	if got.Value != "hello" {
		t.Errorf("handler payload = %q, want %q", got.Value, "hello")
	}
}

func TestScheduler_ArgsMarshaledAtScheduleTime(t *testing.T) {
	registry := NewRegistry()

	type payload struct {
		Value string `json:"value"`
	}

	var mu sync.Mutex
	var got payload
	_ = registry.Register("jobs.snapshot", func(ctx context.Context, args json.RawMessage) error {
		var p payload
		if err := json.Unmarshal(args, &p); err != nil {
			return err
		}
		mu.Lock()
		got = p
		mu.Unlock()
		return nil
	})

	scheduler := NewInProcessScheduler(registry, testLogger())

	args := &payload{Value: "before"}
	if _, err := scheduler.Schedule(context.Background(), "jobs.snapshot", args, 20*time.Millisecond); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	// Mutating the caller's value after scheduling must not leak in
	args.Value = "after"

	scheduler.Wait()

	mu.Lock()
	defer mu.Unlock()
	if got.Value != "before" {
		t.Errorf("handler saw %q, want snapshot %q", got.Value, "before")
	}
}

func TestScheduler_FailureAndPanicAreContained(t *testing.T) {
	registry := NewRegistry()

	_ = registry.Register("jobs.fail", func(ctx context.Context, args json.RawMessage) error {
		return errors.New("boom")
	})
	_ = registry.Register("jobs.panic", func(ctx context.Context, args json.RawMessage) error {
		panic("boom")
	})

	scheduler := NewInProcessScheduler(registry, testLogger())

	if _, err := scheduler.Schedule(context.Background(), "jobs.fail", nil, 0); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if _, err := scheduler.Schedule(context.Background(), "jobs.panic", nil, 0); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	// Wait returning at all proves the panic was recovered
	scheduler.Wait()
}

func TestScheduler_DelayIsMinimumBound(t *testing.T) {
	registry := NewRegistry()

	var mu sync.Mutex
	var ranAt time.Time
	_ = registry.Register("jobs.delayed", func(ctx context.Context, args json.RawMessage) error {
		mu.Lock()
		ranAt = time.Now()
		mu.Unlock()
		return nil
	})

	scheduler := NewInProcessScheduler(registry, testLogger())

	delay := 30 * time.Millisecond
	start := time.Now()
	if _, err := scheduler.Schedule(context.Background(), "jobs.delayed", nil, delay); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	scheduler.Wait()

	mu.Lock()
	defer mu.Unlock()
	if elapsed := ranAt.Sub(start); elapsed < delay {
		t.Errorf("job ran after %v, want at least %v", elapsed, delay)
	}
}
