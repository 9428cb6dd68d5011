package script

import (
	"iter"

	"github.com/tidwall/sjson"
	lua "github.com/yuin/gopher-lua"
)

// inspect implements actl.inspect(container). It returns a JSON document
// describing the container:
//
//	{"kind":"array","len":2,"cap":4,"items":[1,"x"]}
//	{"kind":"list","len":1,"items":[true]}
//	{"kind":"string","len":2,"cap":3,"size":2,"text":"hi","shared":false}
func (r *Runtime) inspect(L *lua.LState) int {
	ud := L.CheckUserData(1)

	var (
		doc string
		err error
	)
	switch c := ud.Value.(type) {
	case *luaArray:
		doc, err = describe("array", c.Len(), c.Cap(), c.Values())
	case *luaList:
		doc, err = describe("list", c.Len(), -1, c.Values())
	case *luaString:
		doc, err = describeString(c)
	default:
		L.ArgError(1, "container expected")
	}
	if err != nil {
		L.RaiseError("inspect: %v", err)
	}
	L.Push(lua.LString(doc))
	return 1
}

// describe builds the document for a sequence container. A negative cap
// is omitted.
func describe(kind string, length, capacity int, values iter.Seq[lua.LValue]) (string, error) {
	doc, err := sjson.Set("", "kind", kind)
	if err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "len", length); err != nil {
		return "", err
	}
	if capacity >= 0 {
		if doc, err = sjson.Set(doc, "cap", capacity); err != nil {
			return "", err
		}
	}
	if doc, err = sjson.SetRaw(doc, "items", "[]"); err != nil {
		return "", err
	}
	for v := range values {
		if doc, err = sjson.Set(doc, "items.-1", jsonValue(v)); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func describeString(s *luaString) (string, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"kind", "string"},
		{"len", s.Len()},
		{"cap", s.Cap()},
		{"size", s.Size()},
		{"text", s.String()},
		{"shared", s.IsShared()},
	}
	doc := ""
	for _, f := range fields {
		var err error
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", err
		}
	}
	return doc, nil
}

// jsonValue maps a Lua value to its JSON counterpart. Values without one
// are rendered with their Lua string form.
func jsonValue(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LNilType:
		return nil
	case *lua.LUserData:
		if s, ok := v.Value.(*luaString); ok {
			return s.String()
		}
	}
	return v.String()
}
