package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actl/internal/container/str"
)

// installModule registers the container types and the actl global.
func (r *Runtime) installModule() {
	L := r.L
	r.registerArray()
	r.registerList()
	r.registerString()

	funcs := map[string]lua.LGFunction{
		"array":      r.newArray,
		"list":       r.newList,
		"string":     r.newString,
		"from_int":   r.fromInt,
		"from_uint":  r.fromUint,
		"from_float": r.fromFloat,
		"inspect":    r.inspect,
		"stats":      r.allocStats,
	}
	mod := L.NewTable()
	for name, fn := range funcs {
		L.SetField(mod, name, L.NewFunction(r.guard(fn)))
	}
	L.SetGlobal("actl", mod)
}

// register creates the metatable for a container type.
func (r *Runtime) register(typeName string, methods, meta map[string]lua.LGFunction) {
	L := r.L
	mt := L.NewTypeMetatable(typeName)

	index := L.NewTable()
	for name, fn := range methods {
		L.SetField(index, name, L.NewFunction(r.guard(fn)))
	}
	L.SetField(mt, "__index", index)
	for name, fn := range meta {
		L.SetField(mt, name, L.NewFunction(r.guard(fn)))
	}
}

// push wraps v in userdata with the metatable of typeName.
func push(L *lua.LState, typeName string, v any) {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	L.Push(ud)
}

// check returns argument n as a T or raises an argument error.
func check[T any](L *lua.LState, n int, typeName string) T {
	ud := L.CheckUserData(n)
	v, ok := ud.Value.(T)
	if !ok {
		L.ArgError(n, typeName+" expected")
	}
	return v
}

// checkIndex returns argument n as an index in [0, limit).
func checkIndex(L *lua.LState, n, limit int) int {
	i := L.CheckInt(n)
	if i < 0 || i >= limit {
		L.ArgError(n, fmt.Sprintf("index %d out of range [0, %d)", i, limit))
	}
	return i
}

func (r *Runtime) fromInt(L *lua.LState) int {
	n := L.CheckNumber(1)
	push(L, stringType, str.FromInt(int64(n), str.WithProvider(r.chars)))
	return 1
}

func (r *Runtime) fromUint(L *lua.LState) int {
	n := L.CheckNumber(1)
	if n < 0 {
		L.ArgError(1, "non-negative number expected")
	}
	push(L, stringType, str.FromUint(uint64(n), str.WithProvider(r.chars)))
	return 1
}

func (r *Runtime) fromFloat(L *lua.LState) int {
	n := L.CheckNumber(1)
	precision := L.OptInt(2, 2)
	sep := L.OptString(3, ".")
	push(L, stringType, str.FromFloatSep(float64(n), precision, []byte(sep), str.WithProvider(r.chars)))
	return 1
}

// allocStats returns the allocation counters as a table, or nil when the
// runtime does not track allocations.
func (r *Runtime) allocStats(L *lua.LState) int {
	if r.providers.Stats == nil {
		L.Push(lua.LNil)
		return 1
	}
	snap := r.providers.Stats.Snapshot()
	t := L.NewTable()
	t.RawSetString("allocations", lua.LNumber(snap.Allocations))
	t.RawSetString("releases", lua.LNumber(snap.Releases))
	t.RawSetString("bytes_allocated", lua.LNumber(snap.BytesAllocated))
	t.RawSetString("bytes_live", lua.LNumber(snap.Live()))
	L.Push(t)
	return 1
}
