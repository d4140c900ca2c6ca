package task

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSpawn(t *testing.T) {
	done := make(chan struct{})
	Spawn(func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("spawned task never ran")
	}
}

func TestPrimary_RunsTasksInOrder(t *testing.T) {
	p := NewPrimary()

	var got []int
	for i := 0; i < 20; i++ {
		n := i
		p.Run(func() {
			got = append(got, n)
		})
	}
	p.Shutdown()

	if len(got) != 20 {
		t.Fatalf("expected 20 tasks to run, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran out of order (got %d)", i, v)
		}
	}
}

func TestPrimary_TasksNeverOverlap(t *testing.T) {
	p := NewPrimary()

	var inFlight atomic.Int32
	var overlaps atomic.Int32
	for i := 0; i < 10; i++ {
		p.Run(func() {
			if inFlight.Add(1) != 1 {
				overlaps.Add(1)
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
		})
	}
	p.Shutdown()

	if n := overlaps.Load(); n != 0 {
		t.Errorf("expected serial execution, got %d overlapping tasks", n)
	}
}

func TestPrimary_ShutdownDrainsBacklog(t *testing.T) {
	p := NewPrimary()

	var ran atomic.Int32
	for i := 0; i < 50; i++ {
		p.Run(func() {
			ran.Add(1)
		})
	}
	p.Shutdown()

	if n := ran.Load(); n != 50 {
		t.Errorf("expected all 50 scheduled tasks to run before shutdown, got %d", n)
	}
}

func TestPrimary_ShutdownIdempotent(t *testing.T) {
	p := NewPrimary()
	p.Run(func() {})
	p.Shutdown()
	p.Shutdown()
}

func TestRunOnPrimary(t *testing.T) {
	done := make(chan struct{})
	RunOnPrimary(func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task on default primary never ran")
	}
}
