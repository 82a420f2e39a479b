package queue

import (
	"testing"
)

func TestPushPopFIFOOrder(t *testing.T) {
	q := New()
	const n = 1000

	for i := 0; i < n; i++ {
		q.Push(i)
	}
	if q.Len() != n {
		t.Fatalf("Len() = %d, want %d", q.Len(), n)
	}

	for i := 0; i < n; i++ {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() returned ok=false at i=%d", i)
		}
		if got.(int) != i {
			t.Fatalf("Pop() = %v, want %d", got, i)
		}
	}
	if !q.IsEmpty() {
		t.Fatal("queue should be empty after draining all pushes")
	}
}

func TestPopEmpty(t *testing.T) {
	q := New()
	if _, ok := q.Pop(); ok {
		t.Fatal("Pop() on empty queue should return ok=false")
	}
}

func TestGrowWithoutPanic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10,000,000-element stress test in short mode")
	}
	q := New()
	const n = 10_000_000

	for i := 0; i < n; i++ {
		q.Push(i)
	}
	for i := 0; i < n; i++ {
		got, ok := q.Pop()
		if !ok || got.(int) != i {
			t.Fatalf("mismatch at %d: got=%v ok=%v", i, got, ok)
		}
	}
}

func TestInterleavedPushPop(t *testing.T) {
	q := New()
	q.Push("a")
	q.Push("b")
	if got, _ := q.Pop(); got != "a" {
		t.Fatalf("Pop() = %v, want a", got)
	}
	q.Push("c")
	if got, _ := q.Pop(); got != "b" {
		t.Fatalf("Pop() = %v, want b", got)
	}
	if got, _ := q.Pop(); got != "c" {
		t.Fatalf("Pop() = %v, want c", got)
	}
	if !q.IsEmpty() {
		t.Fatal("queue should be empty")
	}
}

func TestCloseIsIdempotentAndSignals(t *testing.T) {
	q := New()
	q.Close()
	select {
	case <-q.Done():
	default:
		t.Fatal("Done() channel should be closed after Close()")
	}
	select {
	case <-q.NewFrame():
	default:
		t.Fatal("Close() should also post the new-frame signal")
	}
	q.Close() // must not panic on double-close
}

func TestNewFrameSignalOnPush(t *testing.T) {
	q := New()
	q.Push(42)
	select {
	case <-q.NewFrame():
	default:
		t.Fatal("Push() should post the new-frame signal")
	}
}
