package sema

import (
	"sync"
	"testing"
	"time"
)

func TestSemaphore_New(t *testing.T) {
	s := New(3)
	if s == nil {
		t.Fatal("expected non-nil semaphore")
	}
	if s.Count() != 3 {
		t.Errorf("expected count 3, got %d", s.Count())
	}
}

func TestSemaphore_New_NegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative initial count")
		}
	}()
	New(-1)
}

func TestSemaphore_AcquireRelease(t *testing.T) {
	s := New(2)

	s.Acquire()
	s.Acquire()
	if s.Count() != 0 {
		t.Errorf("expected count 0, got %d", s.Count())
	}

	s.Release()
	if s.Count() != 1 {
		t.Errorf("expected count 1, got %d", s.Count())
	}
}

func TestSemaphore_AcquireBlocksAtZero(t *testing.T) {
	s := New(0)

	acquired := make(chan struct{})
	go func() {
		s.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire should block while count is zero")
	case <-time.After(50 * time.Millisecond):
	}

	s.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Acquire should complete after Release")
	}
}

func TestSemaphore_CountExceedsInitial(t *testing.T) {
	// Used as a signal counter the count starts at zero and grows with
	// every Release.
	s := New(0)
	s.Release()
	s.Release()
	s.Release()
	if s.Count() != 3 {
		t.Errorf("expected count 3, got %d", s.Count())
	}
}

func TestSemaphore_Concurrent(t *testing.T) {
	s := New(0)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Release()
		}()
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Acquire()
		}()
	}
	wg.Wait()

	if s.Count() != 0 {
		t.Errorf("expected count 0 after balanced operations, got %d", s.Count())
	}
}
