package settings

import (
	"github.com/ariel-frischer/termkeys/internal/jsontree"
)

// Key chords of the managed bindings.
const (
	ScaleUpKeys   = "ctrl+."
	ScaleDownKeys = "ctrl+,"
)

const (
	bindingsKey = "keybindings"
	keysKey     = "keys"
	commandKey  = "command"
)

// Binding is a keybinding record this tool adds to the settings document.
type Binding struct {
	Keys    string
	Command *jsontree.Value
}

// Value returns the record as it is written into the keybindings list.
func (b Binding) Value() *jsontree.Value {
	return jsontree.NewObject(
		jsontree.Member{Key: commandKey, Value: b.Command.Clone()},
		jsontree.Member{Key: keysKey, Value: jsontree.NewString(b.Keys)},
	)
}

// ManagedBindings returns the desired binding set: scale-up first, then
// scale-down. Each call returns fresh values, so callers may not mutate
// the shared definition.
func ManagedBindings() []Binding {
	return []Binding{
		{Keys: ScaleUpKeys, Command: adjustFontSize(1)},
		{Keys: ScaleDownKeys, Command: adjustFontSize(-1)},
	}
}

func adjustFontSize(delta int64) *jsontree.Value {
	return jsontree.NewObject(
		jsontree.Member{Key: "action", Value: jsontree.NewString("adjustFontSize")},
		jsontree.Member{Key: "delta", Value: jsontree.NewInt(delta)},
	)
}
