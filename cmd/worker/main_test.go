package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type fakeSchedule struct {
	started atomic.Bool
	stopped atomic.Bool
	block   time.Duration
}

func (f *fakeSchedule) Start() { f.started.Store(true) }

func (f *fakeSchedule) Stop() {
	time.Sleep(f.block)
	f.stopped.Store(true)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := &fakeSchedule{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		run(ctx, s, time.Second)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not return after cancel")
	}
	if !s.started.Load() || !s.stopped.Load() {
		t.Fatalf("expected start and stop, got started=%v stopped=%v", s.started.Load(), s.stopped.Load())
	}
}

func TestRunGivesUpAfterTimeout(t *testing.T) {
	s := &fakeSchedule{block: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	run(ctx, s, 20*time.Millisecond)
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("run waited %s past its timeout", elapsed)
	}
}
