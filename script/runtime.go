// Package script runs tengo-scripted attack-pattern effects. A pattern
// spec may point at a script that defines an `effect` function; the
// runtime compiles it once and re-binds the engine surface on every
// invocation.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/otterblade/combat"
)

const effectDispatchScript = `
effect(__engine)
`

// Runtime caches compiled effect scripts by name.
type Runtime struct {
	cache map[string]*tengo.Compiled
}

func NewRuntime() *Runtime {
	return &Runtime{cache: map[string]*tengo.Compiled{}}
}

// Compile registers an effect script under name. The script must define
// an `effect` function taking the engine map.
func (r *Runtime) Compile(name string, src []byte) error {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+effectDispatchScript)...))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", name, err)
	}
	r.cache[name] = compiled
	return nil
}

// EffectFunc returns a pattern effect that runs the named script against
// the boss each time the step fires.
func (r *Runtime) EffectFunc(name string) (combat.EffectFunc, error) {
	compiled, ok := r.cache[name]
	if !ok {
		return nil, fmt.Errorf("script: unknown effect script %q", name)
	}

	return func(b *combat.Boss) {
		if err := compiled.Set("__engine", buildEngine(b)); err != nil {
			fmt.Printf("script: %s bind error: %v\n", name, err)
			return
		}
		if err := compiled.Run(); err != nil {
			fmt.Printf("script: %s run error: %v\n", name, err)
		}
	}, nil
}

// Invalidate drops a cached script so a changed source recompiles.
func (r *Runtime) Invalidate(name string) {
	delete(r.cache, name)
}

// Has reports whether a script is compiled under name.
func (r *Runtime) Has(name string) bool {
	_, ok := r.cache[name]
	return ok
}
