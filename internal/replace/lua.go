package replace

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LoadLuaTable evaluates a user script in a sandboxed Lua state and
// extracts the string-to-string table it returns:
//
//	return {
//	  ["zz"] = "→",
//	  ["::"] = "……",
//	}
//
// Only the base, table, and string libraries are opened; the script
// has no filesystem or OS access.
func LoadLuaTable(path string) (Table, error) {
	L := newSandbox()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("replace: evaluating %s: %w", path, err)
	}
	return tableFromLua(L.Get(-1))
}

// LoadLuaTableString evaluates an in-memory script. Used by tests and
// by hosts that ship rules inside their own config.
func LoadLuaTableString(script string) (Table, error) {
	L := newSandbox()
	defer L.Close()

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("replace: evaluating script: %w", err)
	}
	return tableFromLua(L.Get(-1))
}

func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	return L
}

func tableFromLua(lv lua.LValue) (Table, error) {
	tbl, ok := lv.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("replace: script must return a table, got %s", lv.Type())
	}

	out := make(Table)
	tbl.ForEach(func(k, v lua.LValue) {
		ks, kok := k.(lua.LString)
		vs, vok := v.(lua.LString)
		if kok && vok && ks != "" {
			out[string(ks)] = string(vs)
		}
	})
	return out, nil
}
