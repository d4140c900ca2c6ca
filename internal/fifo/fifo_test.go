package fifo

import (
	"sync"
	"testing"
)

// testItem is a simple struct for testing the generic store
type testItem struct {
	ID   int
	Name string
}

func TestStore_New(t *testing.T) {
	s := New[testItem]()
	if s == nil {
		t.Fatal("expected non-nil store")
	}
	if !s.Empty() {
		t.Error("expected empty store")
	}
	if s.Len() != 0 {
		t.Errorf("expected length 0, got %d", s.Len())
	}
}

func TestStore_PushPop(t *testing.T) {
	s := New[testItem]()

	s.Push(testItem{ID: 1, Name: "first"})
	s.Push(testItem{ID: 2, Name: "second"})
	if s.Len() != 2 {
		t.Errorf("expected length 2, got %d", s.Len())
	}

	first, ok := s.Pop()
	if !ok {
		t.Fatal("expected ok pop")
	}
	if first.ID != 1 || first.Name != "first" {
		t.Errorf("expected {1, first}, got %+v", first)
	}
	if s.Len() != 1 {
		t.Errorf("expected length 1, got %d", s.Len())
	}
}

func TestStore_PopEmpty(t *testing.T) {
	s := New[testItem]()

	item, ok := s.Pop()
	if ok {
		t.Error("expected not-ok pop from empty store")
	}
	if item.ID != 0 || item.Name != "" {
		t.Errorf("expected zero value, got %+v", item)
	}
}

func TestStore_Empty(t *testing.T) {
	s := New[int]()

	if !s.Empty() {
		t.Error("expected empty store")
	}

	s.Push(1)
	if s.Empty() {
		t.Error("expected non-empty store")
	}

	s.Pop()
	if !s.Empty() {
		t.Error("expected empty store after pop")
	}
}

func TestStore_Ordering(t *testing.T) {
	s := New[int]()
	for i := 0; i < 10; i++ {
		s.Push(i)
	}
	for i := 0; i < 10; i++ {
		got, ok := s.Pop()
		if !ok || got != i {
			t.Fatalf("expected %d, got %d (ok=%v)", i, got, ok)
		}
	}
}

func TestStore_Concurrent(t *testing.T) {
	s := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Push(n)
		}(i)
	}
	wg.Wait()

	if s.Len() != 100 {
		t.Errorf("expected 100 items, got %d", s.Len())
	}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Pop()
		}()
	}
	wg.Wait()

	if s.Len() != 50 {
		t.Errorf("expected 50 items after pops, got %d", s.Len())
	}
}
