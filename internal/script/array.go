package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actl/internal/container/array"
)

const arrayType = "actl.array"

type luaArray = array.Array[lua.LValue]

func (r *Runtime) registerArray() {
	r.register(arrayType, map[string]lua.LGFunction{
		"push":         arrayPush,
		"insert":       arrayInsert,
		"erase":        arrayErase,
		"pop":          arrayPop,
		"get":          arrayGet,
		"set":          arraySet,
		"len":          arrayLen,
		"cap":          arrayCap,
		"reserve":      arrayReserve,
		"set_capacity": arraySetCapacity,
		"shrink":       arrayShrink,
		"clear":        arrayClear,
		"index":        arrayIndex,
		"torange":      arrayToRange,
		"values":       arrayValues,
	}, map[string]lua.LGFunction{
		"__len":      arrayLen,
		"__tostring": arrayToString,
	})
}

// newArray implements actl.array([capacity]).
func (r *Runtime) newArray(L *lua.LState) int {
	capacity := L.OptInt(1, 0)
	if capacity < 0 {
		L.ArgError(1, "non-negative capacity expected")
	}
	push(L, arrayType, array.New(capacity, array.WithProvider(r.values)))
	return 1
}

func checkArray(L *lua.LState) *luaArray {
	return check[*luaArray](L, 1, arrayType)
}

func arrayPush(L *lua.LState) int {
	a := checkArray(L)
	a.EmplaceBack(L.CheckAny(2))
	return 0
}

func arrayInsert(L *lua.LState) int {
	a := checkArray(L)
	i := checkIndex(L, 2, a.Len()+1)
	a.Emplace(i, L.CheckAny(3))
	return 0
}

func arrayErase(L *lua.LState) int {
	a := checkArray(L)
	a.Erase(checkIndex(L, 2, a.Len()))
	return 0
}

func arrayPop(L *lua.LState) int {
	a := checkArray(L)
	if a.IsEmpty() {
		L.RaiseError("container is empty")
	}
	L.Push(a.Get(a.Len() - 1))
	a.EraseBack()
	return 1
}

func arrayGet(L *lua.LState) int {
	a := checkArray(L)
	L.Push(a.Get(checkIndex(L, 2, a.Len())))
	return 1
}

func arraySet(L *lua.LState) int {
	a := checkArray(L)
	a.Set(checkIndex(L, 2, a.Len()), L.CheckAny(3))
	return 0
}

func arrayLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkArray(L).Len()))
	return 1
}

func arrayCap(L *lua.LState) int {
	L.Push(lua.LNumber(checkArray(L).Cap()))
	return 1
}

// arrayReserve grows the capacity to at least n.
func arrayReserve(L *lua.LState) int {
	a := checkArray(L)
	if n := L.CheckInt(2); n > a.Cap() {
		a.SetCapacity(n)
	}
	return 0
}

// arraySetCapacity sets the capacity exactly, dropping elements that no
// longer fit.
func arraySetCapacity(L *lua.LState) int {
	a := checkArray(L)
	n := L.CheckInt(2)
	if n < 0 {
		L.ArgError(2, "non-negative capacity expected")
	}
	a.SetCapacity(n)
	return 0
}

func arrayShrink(L *lua.LState) int {
	checkArray(L).ShrinkToFit()
	return 0
}

func arrayClear(L *lua.LState) int {
	checkArray(L).Clear()
	return 0
}

func arrayIndex(L *lua.LState) int {
	a := checkArray(L)
	L.Push(lua.LNumber(array.Index(a, L.CheckAny(2))))
	return 1
}

func arrayToRange(L *lua.LState) int {
	a := checkArray(L)
	L.Push(lua.LNumber(a.ToRange(L.CheckInt64(2))))
	return 1
}

// arrayValues returns the elements as a Lua sequence.
func arrayValues(L *lua.LState) int {
	a := checkArray(L)
	t := L.CreateTable(a.Len(), 0)
	for v := range a.Values() {
		t.Append(v)
	}
	L.Push(t)
	return 1
}

func arrayToString(L *lua.LState) int {
	L.Push(lua.LString(checkArray(L).String()))
	return 1
}
