package settings

import (
	"testing"

	"github.com/ariel-frischer/termkeys/internal/jsontree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingKeys(bindings []Binding) []string {
	keys := make([]string, 0, len(bindings))
	for _, b := range bindings {
		keys = append(keys, b.Keys)
	}
	return keys
}

func TestManagedBindings(t *testing.T) {
	t.Parallel()

	bindings := ManagedBindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, []string{"ctrl+.", "ctrl+,"}, bindingKeys(bindings))

	up, err := jsontree.Encode(bindings[0].Value(), "")
	require.NoError(t, err)
	assert.Equal(t, `{"command":{"action":"adjustFontSize","delta":1},"keys":"ctrl+."}`+"\n", string(up))

	down, err := jsontree.Encode(bindings[1].Value(), "")
	require.NoError(t, err)
	assert.Equal(t, `{"command":{"action":"adjustFontSize","delta":-1},"keys":"ctrl+,"}`+"\n", string(down))

	// callers get independent copies
	require.NoError(t, bindings[0].Command.Set("delta", jsontree.NewInt(5)))
	fresh := ManagedBindings()
	delta, _, err := fresh[0].Command.Get("delta")
	require.NoError(t, err)
	n, err := delta.AsNumber()
	require.NoError(t, err)
	assert.Equal(t, "1", n.String())
}

func TestComputeMissing(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		bindings    string
		wantMissing []string
		wantChanged bool
	}{
		"empty list": {
			bindings:    `[]`,
			wantMissing: []string{"ctrl+.", "ctrl+,"},
			wantChanged: true,
		},
		"both present": {
			bindings:    `[{"command": "x", "keys": "ctrl+,"}, {"command": "y", "keys": "ctrl+."}]`,
			wantMissing: nil,
			wantChanged: false,
		},
		"only scale down present": {
			bindings:    `[{"command": {"action": "adjustFontSize", "delta": -1}, "keys": "ctrl+,"}]`,
			wantMissing: []string{"ctrl+."},
			wantChanged: true,
		},
		"only scale up present": {
			bindings:    `[{"command": "other", "keys": "ctrl+."}]`,
			wantMissing: []string{"ctrl+,"},
			wantChanged: true,
		},
		"chord match is case-sensitive": {
			bindings:    `[{"command": "x", "keys": "Ctrl+,"}, {"command": "y", "keys": "CTRL+."}]`,
			wantMissing: []string{"ctrl+.", "ctrl+,"},
			wantChanged: true,
		},
		"keys given as array": {
			bindings:    `[{"command": "x", "keys": ["ctrl+.", "ctrl+,"]}]`,
			wantMissing: nil,
			wantChanged: false,
		},
		"malformed records ignored": {
			bindings:    `["ctrl+.", null, {"command": "x"}, {"keys": 7}, {"keys": [1, "ctrl+,"]}]`,
			wantMissing: []string{"ctrl+."},
			wantChanged: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			doc, err := Parse([]byte(`{"keybindings": ` + tt.bindings + `}`))
			require.NoError(t, err)
			before, err := doc.Encode("")
			require.NoError(t, err)

			missing, changed, err := ComputeMissing(doc, ManagedBindings())
			require.NoError(t, err)

			assert.Equal(t, tt.wantChanged, changed)
			if tt.wantMissing == nil {
				assert.Empty(t, missing)
			} else {
				assert.Equal(t, tt.wantMissing, bindingKeys(missing))
			}

			after, err := doc.Encode("")
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after), "ComputeMissing must not modify the document")
		})
	}
}

func TestComputeMissing_RequiresList(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	_, _, err = ComputeMissing(doc, ManagedBindings())
	assert.ErrorIs(t, err, jsontree.ErrShape)
}

func TestApply(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"keybindings": [{"command": "paste", "keys": "ctrl+v"}, {"command": "paste", "keys": "ctrl+v"}]}`))
	require.NoError(t, err)

	require.NoError(t, Apply(doc, ManagedBindings()))

	out, err := doc.Encode("")
	require.NoError(t, err)
	want := `{"keybindings":[` +
		`{"command":"paste","keys":"ctrl+v"},` +
		`{"command":"paste","keys":"ctrl+v"},` +
		`{"command":{"action":"adjustFontSize","delta":1},"keys":"ctrl+."},` +
		`{"command":{"action":"adjustFontSize","delta":-1},"keys":"ctrl+,"}` +
		`]}` + "\n"
	assert.Equal(t, want, string(out), "existing duplicates are kept and new records go last")
}

func TestApply_Nothing(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"keybindings": []}`))
	require.NoError(t, err)
	require.NoError(t, Apply(doc, nil))

	list, err := doc.Bindings()
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())
}
