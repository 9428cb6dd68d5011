package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actl/internal/container/list"
)

const listType = "actl.list"

type luaList = list.List[lua.LValue]

func (r *Runtime) registerList() {
	r.register(listType, map[string]lua.LGFunction{
		"push_back":  listPushBack,
		"push_front": listPushFront,
		"pop_back":   listPopBack,
		"pop_front":  listPopFront,
		"first":      listFirst,
		"last":       listLast,
		"get":        listGet,
		"insert":     listInsert,
		"erase":      listErase,
		"len":        listLen,
		"clear":      listClear,
		"values":     listValues,
		"rvalues":    listReverseValues,
	}, map[string]lua.LGFunction{
		"__len":      listLen,
		"__tostring": listToString,
	})
}

// newList implements actl.list().
func (r *Runtime) newList(L *lua.LState) int {
	push(L, listType, list.New(list.WithNodes(r.nodes)))
	return 1
}

func checkList(L *lua.LState) *luaList {
	return check[*luaList](L, 1, listType)
}

func listPushBack(L *lua.LState) int {
	checkList(L).EmplaceBack(L.CheckAny(2))
	return 0
}

func listPushFront(L *lua.LState) int {
	checkList(L).EmplaceFront(L.CheckAny(2))
	return 0
}

func listPopBack(L *lua.LState) int {
	l := checkList(L)
	n, err := l.Last()
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(n.Value)
	l.EraseBack()
	return 1
}

func listPopFront(L *lua.LState) int {
	l := checkList(L)
	n, err := l.First()
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(n.Value)
	l.EraseFront()
	return 1
}

func listFirst(L *lua.LState) int {
	n, err := checkList(L).First()
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(n.Value)
	return 1
}

func listLast(L *lua.LState) int {
	n, err := checkList(L).Last()
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(n.Value)
	return 1
}

func listGet(L *lua.LState) int {
	l := checkList(L)
	L.Push(l.At(checkIndex(L, 2, l.Len())).Value)
	return 1
}

// listInsert places a value before position i; i == len appends.
func listInsert(L *lua.LState) int {
	l := checkList(L)
	i := checkIndex(L, 2, l.Len()+1)
	v := L.CheckAny(3)
	if i == l.Len() {
		l.EmplaceBack(v)
	} else {
		l.EmplaceBefore(l.At(i), v)
	}
	return 0
}

func listErase(L *lua.LState) int {
	l := checkList(L)
	l.Erase(l.At(checkIndex(L, 2, l.Len())))
	return 0
}

func listLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkList(L).Len()))
	return 1
}

func listClear(L *lua.LState) int {
	checkList(L).Clear()
	return 0
}

func listValues(L *lua.LState) int {
	l := checkList(L)
	t := L.CreateTable(l.Len(), 0)
	for v := range l.Values() {
		t.Append(v)
	}
	L.Push(t)
	return 1
}

func listReverseValues(L *lua.LState) int {
	l := checkList(L)
	t := L.CreateTable(l.Len(), 0)
	for v := range l.Backward() {
		t.Append(v)
	}
	L.Push(t)
	return 1
}

func listToString(L *lua.LState) int {
	L.Push(lua.LString(checkList(L).String()))
	return 1
}
