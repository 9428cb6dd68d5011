package alloc

import (
	"errors"
	"testing"
)

func TestHeapAllocate(t *testing.T) {
	var h Heap[int]

	buf := h.Allocate(8)
	if len(buf) != 8 {
		t.Fatalf("len = %d, want 8", len(buf))
	}
	if h.Allocate(0) != nil {
		t.Error("Allocate(0) should return nil")
	}
	h.Release(buf)
}

func TestLimitedWithinBudget(t *testing.T) {
	l := NewLimited[int64](nil, 64)

	buf := l.Allocate(8)
	if len(buf) != 8 {
		t.Fatalf("len = %d, want 8", len(buf))
	}
	if l.InUse() != 64 {
		t.Errorf("InUse() = %d, want 64", l.InUse())
	}

	l.Release(buf)
	if l.InUse() != 0 {
		t.Errorf("InUse() after release = %d, want 0", l.InUse())
	}
}

func TestLimitedOutOfMemory(t *testing.T) {
	l := NewLimited[int64](nil, 32)
	_ = l.Allocate(2)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %T is not an error", r)
		}
		if !errors.Is(err, ErrOutOfMemory) {
			t.Errorf("panic %v does not wrap ErrOutOfMemory", err)
		}
		var oom *OutOfMemoryError
		if !errors.As(err, &oom) {
			t.Fatalf("panic %v is not *OutOfMemoryError", err)
		}
		if oom.Requested != 24 || oom.InUse != 16 || oom.Limit != 32 {
			t.Errorf("unexpected error fields: %+v", oom)
		}
	}()

	l.Allocate(3)
}

func TestTrackedCountsTraffic(t *testing.T) {
	var stats Stats
	p := Track[int32](nil, &stats)

	a := p.Allocate(4)
	b := p.Allocate(2)
	p.Release(a)

	s := stats.Snapshot()
	if s.Allocations != 2 || s.Releases != 1 {
		t.Errorf("counts = %d/%d, want 2/1", s.Allocations, s.Releases)
	}
	if s.BytesAllocated != 24 {
		t.Errorf("BytesAllocated = %d, want 24", s.BytesAllocated)
	}
	if s.Live() != 8 {
		t.Errorf("Live() = %d, want 8", s.Live())
	}
	p.Release(b)
	if stats.Snapshot().Live() != 0 {
		t.Errorf("Live() after release = %d, want 0", stats.Snapshot().Live())
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindHeap, false},
		{"heap", KindHeap, false},
		{"pool", KindPool, false},
		{"arena", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownKind) {
			t.Errorf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewComposesProviders(t *testing.T) {
	var stats Stats
	p, err := New[byte](KindPool, 100, &stats)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tracked, ok := p.(*Tracked[byte])
	if !ok {
		t.Fatalf("outer provider = %T, want *Tracked[byte]", p)
	}
	if _, ok := tracked.inner.(*Limited[byte]); !ok {
		t.Errorf("inner provider = %T, want *Limited[byte]", tracked.inner)
	}

	buf := p.Allocate(10)
	p.Release(buf)
	if stats.Snapshot().Allocations != 1 {
		t.Errorf("Allocations = %d, want 1", stats.Snapshot().Allocations)
	}

	if _, err := New[byte]("bogus", 0, nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(bogus) error = %v, want ErrUnknownKind", err)
	}
}
