package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/racer/types"
)

// Known fields per constructor.
var knownFields = map[string]map[string]bool{
	"Racer":  {"name": true, "sound": true, "max_input": true},
	"Colors": {"correct": true, "incorrect": true, "highlight": true, "status": true},
	"Keys":   {"quit": true},
}

// compile applies the collected tables over Default().
func compile(coll *collector) (*types.Settings, error) {
	set := Default()

	if t := coll.racer; t != nil {
		if err := checkFields("Racer", t); err != nil {
			return nil, err
		}
		set.Name = getString(t, "name", set.Name)
		set.Sound = getBool(t, "sound", set.Sound)
		set.MaxInput = getInt(t, "max_input", set.MaxInput)
	}

	if t := coll.colors; t != nil {
		if err := checkFields("Colors", t); err != nil {
			return nil, err
		}
		set.Colors.Correct = getString(t, "correct", set.Colors.Correct)
		set.Colors.Incorrect = getString(t, "incorrect", set.Colors.Incorrect)
		set.Colors.Highlight = getString(t, "highlight", set.Colors.Highlight)
		set.Colors.Status = getString(t, "status", set.Colors.Status)
	}

	if t := coll.keys; t != nil {
		if err := checkFields("Keys", t); err != nil {
			return nil, err
		}
		if quit := getTable(t, "quit"); quit != nil {
			set.QuitKeys = getStringList(quit)
		}
	}

	return set, nil
}

// checkFields rejects fields the constructor does not know, so typos do
// not silently fall back to defaults.
func checkFields(ctor string, tbl *lua.LTable) error {
	var unknown []string
	tbl.ForEach(func(k, _ lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok || !knownFields[ctor][string(ks)] {
			unknown = append(unknown, k.String())
		}
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%s: unknown field(s) %v", ctor, unknown)
	}
	return nil
}

// getString returns a string field from a Lua table, or def if missing.
func getString(tbl *lua.LTable, key, def string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return def
}

// getBool returns a bool field from a Lua table, or def if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStringList returns the string elements of an array table in order.
// Non-string elements become "" and are reported by validate.
func getStringList(tbl *lua.LTable) []string {
	n := tbl.MaxN()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		s, _ := tbl.RawGetInt(i).(lua.LString)
		out = append(out, string(s))
	}
	return out
}
