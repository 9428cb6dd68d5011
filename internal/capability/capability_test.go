package capability

import "testing"

type handle struct {
	id     int
	closed *int
}

func (h *handle) Destroy() {
	if h.closed != nil {
		*h.closed++
	}
}

type tags struct {
	values []string
}

func (t tags) Clone() tags {
	return tags{values: append([]string(nil), t.values...)}
}

type ptrClone struct{ n *int }

func (p *ptrClone) Clone() ptrClone {
	v := *p.n
	return ptrClone{n: &v}
}

func TestCanClone(t *testing.T) {
	if CanClone[int]() {
		t.Error("int should not be cloneable")
	}
	if !CanClone[tags]() {
		t.Error("tags should be cloneable")
	}
	if !CanClone[ptrClone]() {
		t.Error("ptrClone should be cloneable through its pointer")
	}
}

func TestCopyUsesClone(t *testing.T) {
	src := tags{values: []string{"a", "b"}}
	dst := Copy(&src)

	dst.values[0] = "z"
	if src.values[0] != "a" {
		t.Errorf("source modified through copy: %v", src.values)
	}

	n := 5
	p := ptrClone{n: &n}
	q := Copy(&p)
	if q.n == p.n {
		t.Error("pointer-receiver Clone was not used")
	}

	x := 3
	if Copy(&x) != 3 {
		t.Error("plain copy changed value")
	}
}

func TestRelocate(t *testing.T) {
	src := "hello"
	var dst string
	Relocate(&dst, &src)

	if dst != "hello" {
		t.Errorf("dst = %q, want hello", dst)
	}
	if src != "" {
		t.Errorf("src = %q after relocate, want empty", src)
	}
}

func TestDestroyRunsHook(t *testing.T) {
	closed := 0
	slots := []handle{{id: 1, closed: &closed}, {id: 2, closed: &closed}}

	DestroyAll(slots)

	if closed != 2 {
		t.Errorf("Destroy called %d times, want 2", closed)
	}
	for i, h := range slots {
		if h.id != 0 || h.closed != nil {
			t.Errorf("slot %d not cleared: %+v", i, h)
		}
	}
}
