package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/ariel-frischer/termkeys/internal/jsontree"
	"github.com/ariel-frischer/termkeys/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() *settings.Result {
	managed := settings.ManagedBindings()
	return &settings.Result{
		Path:       "/tmp/settings.json",
		Added:      managed[:1],
		Present:    managed[1:],
		Changed:    true,
		Written:    true,
		BackupPath: "/tmp/settings.json.bak",
	}
}

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps      Capabilities
		wantCheck string
		wantSet   int
	}{
		"unicode terminal": {
			caps:      Capabilities{IsTTY: true, SupportsUnicode: true},
			wantCheck: "✓",
			wantSet:   14,
		},
		"ascii fallback": {
			caps:      Capabilities{},
			wantCheck: "[OK]",
			wantSet:   9,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			sym := SelectSymbols(tt.caps)
			assert.Equal(t, tt.wantCheck, sym.Checkmark)
			assert.Equal(t, tt.wantSet, sym.SpinnerSet)
		})
	}
}

func TestDetectCapabilities_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	caps := DetectCapabilities(f)
	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
}

func TestDescribeCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cmd  *jsontree.Value
		want string
	}{
		"action with args": {
			cmd:  settings.ManagedBindings()[1].Command,
			want: "adjustFontSize delta=-1",
		},
		"plain string command": {
			cmd:  jsontree.NewString("copy"),
			want: `"copy"`,
		},
		"object without action": {
			cmd:  jsontree.NewObject(jsontree.Member{Key: "x", Value: jsontree.NewBool(true)}),
			want: "x=true",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DescribeCommand(tt.cmd))
		})
	}
}

func TestPrintResult(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		result   *settings.Result
		contains []string
		excludes []string
	}{
		"written with backup": {
			result:   sampleResult(),
			contains: []string{"ctrl+,", "already bound", "ctrl+.", "added", "updated /tmp/settings.json", "/tmp/settings.json.bak"},
		},
		"dry run": {
			result: &settings.Result{
				Path:    "/tmp/settings.json",
				Added:   settings.ManagedBindings(),
				Changed: true,
				DryRun:  true,
			},
			contains: []string{"missing", "would add 2 keybinding(s)"},
			excludes: []string{"updated"},
		},
		"no change": {
			result: &settings.Result{
				Path:    "/tmp/settings.json",
				Present: settings.ManagedBindings(),
			},
			contains: []string{"no change needed"},
			excludes: []string{"added", "backup"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			NewPrinter(&buf, Capabilities{}).PrintResult(tt.result)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestWriteReport_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatJSON, nil, sampleResult()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/tmp/settings.json", got["path"])
	assert.Equal(t, true, got["written"])

	added := got["added"].([]any)
	require.Len(t, added, 1)
	first := added[0].(map[string]any)
	assert.Equal(t, "ctrl+.", first["keys"])
	assert.Equal(t, map[string]any{"action": "adjustFontSize", "delta": float64(1)}, first["command"])
}

func TestWriteReport_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatYAML, nil, sampleResult()))

	var got Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.Changed)
	assert.Equal(t, "/tmp/settings.json.bak", got.BackupPath)
	require.Len(t, got.Present, 1)
	assert.Equal(t, "ctrl+,", got.Present[0].Keys)
	assert.Contains(t, buf.String(), "delta: -1")
}

func TestWriteReport_EmptyListsAreArrays(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatJSON, nil, &settings.Result{Path: "p"}))
	assert.Contains(t, buf.String(), `"added": []`)
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := WriteReport(&bytes.Buffer{}, "xml", nil, sampleResult())
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestWaitForKey_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	require.NoError(t, WaitForKey(f, &buf))
	assert.Empty(t, buf.String(), "no prompt without a terminal")
}
