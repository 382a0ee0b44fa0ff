package loader

import (
	"reflect"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func evalTable(t *testing.T, L *lua.LState, src string) *lua.LTable {
	t.Helper()
	if err := L.DoString("__t = " + src); err != nil {
		t.Fatalf("DoString(%q): %v", src, err)
	}
	tbl, ok := L.GetGlobal("__t").(*lua.LTable)
	if !ok {
		t.Fatalf("%q is not a table", src)
	}
	return tbl
}

func TestGetHelpers(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	tbl := evalTable(t, L, `{ s = "x", b = true, n = 7.9, t = { "a", 2, "c" } }`)

	if got := getString(tbl, "s", "d"); got != "x" {
		t.Errorf("getString = %q", got)
	}
	if got := getString(tbl, "n", "d"); got != "d" {
		t.Errorf("getString on number = %q, want default", got)
	}
	if got := getBool(tbl, "missing", true); !got {
		t.Error("getBool missing should return default")
	}
	if got := getInt(tbl, "n", 0); got != 7 {
		t.Errorf("getInt = %d, want 7", got)
	}
	list := getStringList(getTable(tbl, "t"))
	if want := []string{"a", "", "c"}; !reflect.DeepEqual(list, want) {
		t.Errorf("getStringList = %q, want %q", list, want)
	}
	if getTable(tbl, "s") != nil {
		t.Error("getTable on string should be nil")
	}
}

func TestCheckFields(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := checkFields("Colors", evalTable(t, L, `{ correct = "1", status = "2" }`)); err != nil {
		t.Errorf("known fields rejected: %v", err)
	}
	err := checkFields("Keys", evalTable(t, L, `{ quit = {}, pause = {}, "extra" }`))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "pause") || !strings.Contains(err.Error(), "1") {
		t.Errorf("error should name every unknown field: %v", err)
	}
}

func TestCompile_NoCalls(t *testing.T) {
	set, err := compile(&collector{calls: map[string]int{}})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !reflect.DeepEqual(set, Default()) {
		t.Errorf("compile() = %+v, want defaults", set)
	}
}
