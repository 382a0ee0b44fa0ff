package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the settings constructors as globals.
//
//	Racer  { name = "ann", sound = true, max_input = 40 }
//	Colors { correct = "34", incorrect = "196", highlight = "", status = "236" }
//	Keys   { quit = { "ctrl+c", "esc" } }
//
// Each constructor may be called more than once; later fields override
// earlier ones.
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Racer", L.NewFunction(func(L *lua.LState) int {
		coll.racer = merge(L, coll.racer, L.CheckTable(1))
		coll.calls["Racer"]++
		return 0
	}))

	L.SetGlobal("Colors", L.NewFunction(func(L *lua.LState) int {
		coll.colors = merge(L, coll.colors, L.CheckTable(1))
		coll.calls["Colors"]++
		return 0
	}))

	L.SetGlobal("Keys", L.NewFunction(func(L *lua.LState) int {
		coll.keys = merge(L, coll.keys, L.CheckTable(1))
		coll.calls["Keys"]++
		return 0
	}))
}

// merge copies the fields of src over dst, allocating dst if needed.
func merge(L *lua.LState, dst, src *lua.LTable) *lua.LTable {
	if dst == nil {
		dst = L.NewTable()
	}
	src.ForEach(func(k, v lua.LValue) {
		dst.RawSet(k, v)
	})
	return dst
}
