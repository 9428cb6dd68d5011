package array

import (
	"errors"
	"slices"
	"testing"
	"testing/quick"

	"github.com/dshills/actl/internal/alloc"
)

// tracked counts how many times Destroy runs on its values.
type tracked struct {
	id        int
	destroyed *int
}

func (t *tracked) Destroy() {
	if t.destroyed != nil {
		*t.destroyed++
	}
}

type label struct {
	parts []string
}

func (l label) Clone() label {
	return label{parts: slices.Clone(l.parts)}
}

func TestNew(t *testing.T) {
	a := New[int](0)
	if a.Len() != 0 || a.Cap() != 0 {
		t.Errorf("New(0): len=%d cap=%d, want 0/0", a.Len(), a.Cap())
	}
	if !a.IsEmpty() {
		t.Error("New(0) should be empty")
	}

	b := New[int](10)
	if b.Len() != 0 {
		t.Errorf("New(10): len=%d, want 0", b.Len())
	}
	if b.Cap() != 10 {
		t.Errorf("New(10): cap=%d, want 10", b.Cap())
	}
}

func TestZeroValueUsable(t *testing.T) {
	var a Array[string]
	a.EmplaceBack("x")
	a.EmplaceBack("y")
	if got := a.String(); got != "[2]{ x, y }" {
		t.Errorf("String() = %q", got)
	}
	a.Delete()
	if a.Cap() != 0 {
		t.Errorf("cap after Delete = %d, want 0", a.Cap())
	}
}

func TestEmplaceBackDoubling(t *testing.T) {
	want := []int{1, 2, 4, 4, 8, 8, 8, 8, 16, 16, 16, 16, 16, 16, 16, 16, 32}

	a := New[int](0)
	for i, c := range want {
		a.EmplaceBack(i)
		if a.Len() != i+1 {
			t.Fatalf("after %d pushes len=%d", i+1, a.Len())
		}
		if a.Cap() != c {
			t.Errorf("after %d pushes cap=%d, want %d", i+1, a.Cap(), c)
		}
	}
}

func TestCopyRoundTrip(t *testing.T) {
	src := []int{5, 4, 3, 2, 1}
	a := Copy(src)

	if a.Len() != len(src) || a.Cap() != len(src) {
		t.Fatalf("len=%d cap=%d, want %d", a.Len(), a.Cap(), len(src))
	}
	for i := range src {
		if a.Get(i) != src[i] {
			t.Errorf("a[%d] = %d, want %d", i, a.Get(i), src[i])
		}
	}

	a.Set(0, 99)
	if src[0] != 5 {
		t.Error("modifying the copy changed the source")
	}
}

func TestCopyClonesElements(t *testing.T) {
	src := []label{{parts: []string{"a"}}, {parts: []string{"b"}}}

	for name, a := range map[string]*Array[label]{
		"Copy":     Copy(src),
		"DeepCopy": DeepCopy(src),
	} {
		a.At(0).parts[0] = "z"
		if src[0].parts[0] != "a" {
			t.Errorf("%s: source element shared with copy", name)
		}
	}
}

func TestMoveEmptiesSource(t *testing.T) {
	src := []string{"a", "b", "c"}
	backing := src
	a := Move(&src)

	if len(src) != 0 {
		t.Errorf("source len = %d after move, want 0", len(src))
	}
	for i, v := range backing {
		if v != "" {
			t.Errorf("source slot %d = %q, want cleared", i, v)
		}
	}
	if got := a.Slice(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("moved contents = %v", got)
	}
}

func TestSized(t *testing.T) {
	a := Sized(3, "x")
	if got := a.String(); got != "[3]{ x, x, x }" {
		t.Errorf("String() = %q", got)
	}
	if Sized(0, 1).Cap() != 0 {
		t.Error("Sized(0) should not allocate")
	}
}

func TestFromSliceKeepsCapacity(t *testing.T) {
	s := make([]int, 2, 7)
	s[0], s[1] = 1, 2
	a := FromSlice(s)
	if a.Len() != 2 || a.Cap() != 7 {
		t.Errorf("len=%d cap=%d, want 2/7", a.Len(), a.Cap())
	}
}

func TestEmplaceEraseInverse(t *testing.T) {
	tests := []struct {
		name  string
		init  []int
		index int
	}{
		{"front", []int{1, 2, 3}, 0},
		{"middle", []int{1, 2, 3}, 1},
		{"back", []int{1, 2, 3}, 3},
		{"empty", nil, 0},
		{"single", []int{7}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Copy(tt.init)
			a.Emplace(tt.index, 42)
			if a.Len() != len(tt.init)+1 {
				t.Fatalf("len after Emplace = %d", a.Len())
			}
			if a.Get(tt.index) != 42 {
				t.Errorf("a[%d] = %d, want 42", tt.index, a.Get(tt.index))
			}

			a.Erase(tt.index)
			if !slices.Equal(a.Slice(), tt.init) && !(len(tt.init) == 0 && a.Len() == 0) {
				t.Errorf("after Erase = %v, want %v", a.Slice(), tt.init)
			}
		})
	}
}

func TestEmplaceEraseInverseQuick(t *testing.T) {
	f := func(init []int16, at uint8, v int16) bool {
		a := Copy(init)
		index := int(at) % (len(init) + 1)
		a.Emplace(index, v)
		a.Erase(index)
		return slices.Equal(a.Slice(), init) || (len(init) == 0 && a.Len() == 0)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestEmplaceGrowth(t *testing.T) {
	a := New[int](0)
	a.Emplace(0, 1)
	if a.Cap() != 2 {
		t.Errorf("cap = %d, want 2", a.Cap())
	}
	// One free slot left: fewer than two, so it grows.
	a.Emplace(0, 0)
	if a.Cap() != 4 {
		t.Errorf("cap = %d, want 4", a.Cap())
	}
	if got := a.Slice(); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("contents = %v", got)
	}
}

func TestEraseBack(t *testing.T) {
	destroyed := 0
	a := New[tracked](0)
	for i := 0; i < 3; i++ {
		a.EmplaceBack(tracked{id: i, destroyed: &destroyed})
	}

	a.EraseBack()
	if a.Len() != 2 {
		t.Errorf("len = %d, want 2", a.Len())
	}
	if destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", destroyed)
	}
	if a.At(2).id != 0 || a.At(2).destroyed != nil {
		t.Error("erased slot not cleared")
	}
}

func TestEraseDestroysOnlyTarget(t *testing.T) {
	destroyed := 0
	a := New[tracked](4)
	for i := 0; i < 4; i++ {
		a.EmplaceBack(tracked{id: i, destroyed: &destroyed})
	}

	a.Erase(1)
	if destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", destroyed)
	}
	var ids []int
	for _, v := range a.All() {
		ids = append(ids, v.id)
	}
	if !slices.Equal(ids, []int{0, 2, 3}) {
		t.Errorf("ids = %v, want [0 2 3]", ids)
	}
}

func TestSetCapacity(t *testing.T) {
	destroyed := 0
	a := New[tracked](0)
	for i := 0; i < 5; i++ {
		a.EmplaceBack(tracked{id: i, destroyed: &destroyed})
	}

	a.SetCapacity(8)
	if destroyed != 0 {
		t.Errorf("growth destroyed %d elements", destroyed)
	}

	a.SetCapacity(3)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Errorf("len=%d cap=%d, want 3/3", a.Len(), a.Cap())
	}
	if destroyed != 2 {
		t.Errorf("destroyed = %d, want 2", destroyed)
	}

	a.SetCapacity(3)
	if a.Cap() != 3 {
		t.Error("same capacity should be a no-op")
	}

	a.SetCapacity(0)
	if a.Len() != 0 || a.Cap() != 0 {
		t.Errorf("after SetCapacity(0) len=%d cap=%d", a.Len(), a.Cap())
	}
	if destroyed != 5 {
		t.Errorf("destroyed = %d, want 5", destroyed)
	}
}

func TestShrinkToFit(t *testing.T) {
	a := New[int](16)
	a.EmplaceBack(1)
	a.EmplaceBack(2)
	a.ShrinkToFit()
	if a.Cap() != 2 {
		t.Errorf("cap = %d, want 2", a.Cap())
	}
}

func TestClearKeepsBuffer(t *testing.T) {
	a := Copy([]int{1, 2, 3})
	a.Clear()
	if a.Len() != 0 || a.Cap() != 3 {
		t.Errorf("len=%d cap=%d, want 0/3", a.Len(), a.Cap())
	}
}

func TestToRange(t *testing.T) {
	a := Copy([]int{0, 1, 2, 3, 4})

	tests := []struct {
		in   int64
		want int
	}{
		{0, 0},
		{4, 4},
		{5, 0},
		{-1, 4},
		{-5, 0},
		{-6, 4},
		{12, 2},
		{-12, 3},
	}
	for _, tt := range tests {
		if got := a.ToRange(tt.in); got != tt.want {
			t.Errorf("ToRange(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if got := New[int](0).ToRange(3); got != NullIndex {
		t.Errorf("ToRange on empty = %d, want NullIndex", got)
	}
}

func TestIndex(t *testing.T) {
	a := Copy([]string{"a", "b", "c", "b"})

	if got := Index(a, "b"); got != 1 {
		t.Errorf("Index(b) = %d, want 1", got)
	}
	if got := Index(a, "z"); got != NullIndex {
		t.Errorf("Index(z) = %d, want NullIndex", got)
	}
	if got := a.IndexFunc(func(s string) bool { return s == "c" }); got != 2 {
		t.Errorf("IndexFunc(c) = %d, want 2", got)
	}
}

func TestContainsByIdentity(t *testing.T) {
	a := Copy([]int{1, 2, 3})
	b := Copy([]int{1, 2, 3})

	if !a.Contains(a.At(1)) {
		t.Error("Contains should find its own element")
	}
	if a.Contains(b.At(1)) {
		t.Error("Contains matched an equal element of another array")
	}
	x := 2
	if a.Contains(&x) || a.Contains(nil) {
		t.Error("Contains matched a foreign pointer")
	}

	// Reserved slots are not live.
	a.EraseBack()
	if a.Contains(a.At(2)) {
		t.Error("Contains matched a reserved slot")
	}
}

func TestReinit(t *testing.T) {
	destroyed := 0
	a := New[tracked](1)
	a.EmplaceBack(tracked{id: 1, destroyed: &destroyed})

	p := a.Reinit(0, tracked{id: 2})
	if destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", destroyed)
	}
	if p.id != 2 {
		t.Errorf("id = %d, want 2", p.id)
	}
}

func TestCloneAssignTake(t *testing.T) {
	a := New[int](6)
	a.EmplaceBack(1)
	a.EmplaceBack(2)

	c := a.Clone()
	if c.Cap() != 6 || !slices.Equal(c.Slice(), []int{1, 2}) {
		t.Errorf("Clone = %v cap %d", c.Slice(), c.Cap())
	}
	c.Set(0, 10)
	if a.Get(0) != 1 {
		t.Error("Clone shares storage")
	}

	d := Copy([]int{9, 9, 9})
	d.Assign(a)
	if !slices.Equal(d.Slice(), []int{1, 2}) || d.Cap() != 6 {
		t.Errorf("Assign = %v cap %d", d.Slice(), d.Cap())
	}
	d.Assign(d)
	if d.Len() != 2 {
		t.Error("self-assign changed length")
	}

	e := New[int](0)
	e.Take(a)
	if !slices.Equal(e.Slice(), []int{1, 2}) || e.Cap() != 6 {
		t.Errorf("Take = %v cap %d", e.Slice(), e.Cap())
	}
	if a.Len() != 0 || a.Cap() != 0 {
		t.Errorf("source after Take len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestSliceInterop(t *testing.T) {
	a := New[int](4)
	a.EmplaceBack(1)
	a.EmplaceBack(2)

	s := a.ToSlice()
	if !slices.Equal(s, []int{1, 2}) || cap(s) != 4 {
		t.Errorf("ToSlice = %v cap %d", s, cap(s))
	}

	dst := []int{7, 7, 7}
	a.MoveToSlice(&dst)
	if !slices.Equal(dst, []int{1, 2}) {
		t.Errorf("MoveToSlice = %v", dst)
	}
	if a.Len() != 0 || a.Cap() != 0 {
		t.Errorf("array after MoveToSlice len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestIterationStopsEarly(t *testing.T) {
	a := Copy([]int{1, 2, 3, 4})
	var seen []int
	for v := range a.Values() {
		if v == 3 {
			break
		}
		seen = append(seen, v)
	}
	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("seen = %v", seen)
	}
}

func TestString(t *testing.T) {
	if got := New[int](3).String(); got != "[0]{ }" {
		t.Errorf("empty String() = %q", got)
	}
	if got := Copy([]int{1, 2, 3}).String(); got != "[3]{ 1, 2, 3 }" {
		t.Errorf("String() = %q", got)
	}
}

func TestSize(t *testing.T) {
	a := Copy([]int64{1, 2, 3})
	if a.Size() != 24 {
		t.Errorf("Size() = %d, want 24", a.Size())
	}
}

func TestProviderTraffic(t *testing.T) {
	var stats alloc.Stats
	p := alloc.Track[int](alloc.NewPool[int](), &stats)

	a := New(0, WithProvider[int](p))
	for i := 0; i < 9; i++ {
		a.EmplaceBack(i)
	}
	// Capacities 1, 2, 4, 8, 16.
	if s := stats.Snapshot(); s.Allocations != 5 || s.Releases != 4 {
		t.Errorf("allocations/releases = %d/%d, want 5/4", s.Allocations, s.Releases)
	}

	a.Delete()
	if s := stats.Snapshot(); s.Live() != 0 {
		t.Errorf("live bytes after Delete = %d", s.Live())
	}
}

func TestAllocationFailurePropagates(t *testing.T) {
	p := alloc.NewLimited[int64](nil, 8*4)
	a := New(0, WithProvider[int64](p))

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, alloc.ErrOutOfMemory) {
			t.Fatalf("recovered %v, want out of memory", r)
		}
	}()

	for i := 0; i < 10; i++ {
		a.EmplaceBack(int64(i))
	}
	t.Fatal("expected allocation failure")
}
