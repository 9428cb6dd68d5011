package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actl/internal/container/str"
)

const stringType = "actl.string"

type luaString = str.String[byte]

func (r *Runtime) registerString() {
	r.register(stringType, map[string]lua.LGFunction{
		"append":    r.stringAppend,
		"insert":    r.stringInsert,
		"erase":     stringErase,
		"len":       stringLen,
		"cap":       stringCap,
		"reversed":  stringReversed,
		"concat":    r.stringConcat,
		"equal":     r.stringEqual,
		"clear":     stringClear,
		"shrink":    stringShrink,
		"str":       stringToString,
		"graphemes": stringGraphemes,
	}, map[string]lua.LGFunction{
		"__len":      stringLen,
		"__tostring": stringToString,
		"__eq":       r.stringEqual,
		"__concat":   r.stringConcat,
	})
}

// newString implements actl.string([text]).
func (r *Runtime) newString(L *lua.LState) int {
	s := str.New(str.WithProvider(r.chars))
	if L.GetTop() >= 1 {
		s.AssignGo(L.CheckString(1))
	}
	push(L, stringType, s)
	return 1
}

func checkString(L *lua.LState) *luaString {
	return check[*luaString](L, 1, stringType)
}

// operand returns argument n as a container string. Plain Lua strings are
// converted with the runtime provider.
func (r *Runtime) operand(L *lua.LState, n int) *luaString {
	switch v := L.Get(n).(type) {
	case *lua.LUserData:
		if s, ok := v.Value.(*luaString); ok {
			return s
		}
	case lua.LString:
		return str.FromGo(string(v), str.WithProvider(r.chars))
	case lua.LNumber:
		return str.FromGo(v.String(), str.WithProvider(r.chars))
	}
	L.ArgError(n, stringType+" or string expected")
	return nil
}

func (r *Runtime) stringAppend(L *lua.LState) int {
	s := checkString(L)
	s.Append(r.operand(L, 2))
	return 0
}

func (r *Runtime) stringInsert(L *lua.LState) int {
	s := checkString(L)
	i := checkIndex(L, 2, s.Len()+1)
	s.Insert(i, r.operand(L, 3))
	return 0
}

// stringErase removes count characters starting at index, clamped to the
// end of the string.
func stringErase(L *lua.LState) int {
	s := checkString(L)
	i := checkIndex(L, 2, s.Len())
	count := L.OptInt(3, 1)
	if count < 0 {
		L.ArgError(3, "non-negative count expected")
	}
	count = min(count, s.Len()-i)
	s.Erase(i, count)
	return 0
}

func stringLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkString(L).Len()))
	return 1
}

func stringCap(L *lua.LState) int {
	L.Push(lua.LNumber(checkString(L).Cap()))
	return 1
}

func stringReversed(L *lua.LState) int {
	push(L, stringType, checkString(L).Reversed())
	return 1
}

// stringConcat returns a new string. It also serves the .. operator, where
// either side may be a plain Lua value.
func (r *Runtime) stringConcat(L *lua.LState) int {
	left := r.operand(L, 1)
	push(L, stringType, left.Concat(r.operand(L, 2)))
	return 1
}

func (r *Runtime) stringEqual(L *lua.LState) int {
	left := r.operand(L, 1)
	L.Push(lua.LBool(left.Equal(r.operand(L, 2))))
	return 1
}

func stringClear(L *lua.LState) int {
	checkString(L).Clear()
	return 0
}

func stringShrink(L *lua.LState) int {
	checkString(L).ShrinkToFit()
	return 0
}

func stringToString(L *lua.LState) int {
	L.Push(lua.LString(checkString(L).String()))
	return 1
}

func stringGraphemes(L *lua.LState) int {
	L.Push(lua.LNumber(str.Graphemes(checkString(L))))
	return 1
}
