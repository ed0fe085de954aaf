// Package scripting hosts the Lua formulas used by the simulation.
package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/combat"
)

//go:embed lua
var builtin embed.FS

// load order: core helpers first, then formulas
var scriptDirs = []string{"core", "combat"}

// Engine wraps a single gopher-lua VM for formula evaluation.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine with the built-in scripts loaded. When
// overrideDir is non-empty, .lua files in its core/ and combat/
// subdirectories are loaded afterwards and replace built-in functions of
// the same name.
func NewEngine(overrideDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range scriptDirs {
		if err := e.loadEmbedded(path.Join("lua", sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load builtin %s scripts: %w", sub, err)
		}
	}

	if overrideDir != "" {
		for _, sub := range scriptDirs {
			if err := e.loadDir(filepath.Join(overrideDir, sub)); err != nil {
				vm.Close()
				return nil, fmt.Errorf("load %s scripts: %w", sub, err)
			}
		}
	}

	return e, nil
}

func (e *Engine) loadEmbedded(dir string) error {
	entries, err := fs.ReadDir(builtin, dir)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := path.Join(dir, entry.Name())
		src, err := builtin.ReadFile(p)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded builtin lua script", zap.String("file", p))
	}
	return nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

// Mitigate calls the Lua calc_damage function. On a script failure it logs
// and falls back to combat.CalcDamage.
func (e *Engine) Mitigate(attack, defence int) int {
	v, err := e.callIntFunc("calc_damage", attack, defence)
	if err != nil {
		e.log.Error("lua calc_damage failed, using builtin curve", zap.Error(err))
		return combat.CalcDamage(attack, defence)
	}
	if v < 0 {
		return 0
	}
	return v
}

// ObeliskDamage calls the Lua obelisk_damage modifier. On a script failure
// the damage passes through unchanged.
func (e *Engine) ObeliskDamage(damage, waveIdx int) int {
	v, err := e.callIntFunc("obelisk_damage", damage, waveIdx)
	if err != nil {
		e.log.Error("lua obelisk_damage failed, passing damage through", zap.Error(err))
		return damage
	}
	if v < 0 {
		return 0
	}
	return v
}

// callIntFunc calls a Lua function with int args and returns an int result.
func (e *Engine) callIntFunc(name string, args ...int) (int, error) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, fmt.Errorf("lua function %s not found", name)
	}
	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = lua.LNumber(a)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, largs...); err != nil {
		return 0, fmt.Errorf("call %s: %w", name, err)
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%s returned %s, want number", name, result.Type())
	}
	return int(n), nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
