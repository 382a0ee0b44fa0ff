// Package loader reads the player's settings file, a sandboxed Lua script,
// into types.Settings. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/racer/types"
)

// collector accumulates the tables passed to the settings constructors.
type collector struct {
	racer  *lua.LTable
	colors *lua.LTable
	keys   *lua.LTable
	calls  map[string]int
}

// Default returns the settings used when no file is given.
func Default() *types.Settings {
	return &types.Settings{
		Name:     "player",
		QuitKeys: []string{"ctrl+c", "esc"},
		Colors: types.Colors{
			Correct:   "34",
			Incorrect: "196",
			Status:    "236",
		},
	}
}

// Load executes the settings file at path, compiles the collected tables
// over the defaults, and validates the result. An empty path returns
// Default().
func Load(path string) (*types.Settings, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{calls: map[string]int{}}
	registerAPI(L, coll)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("executing %s: %w", path, err)
	}

	set, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling settings: %w", err)
	}

	if err := validate(set, coll); err != nil {
		return nil, err
	}

	return set, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.concat, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.rep, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the settings file.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
}
