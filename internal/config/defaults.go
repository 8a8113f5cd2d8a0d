package config

import "time"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# termkeys configuration
# Values here are overridden by TERMKEYS_* environment variables and CLI flags.

# Windows Terminal settings file
settings_path: ""                     # Explicit path; empty = derive from variant
variant: stable                       # stable | preview | unpackaged

# Writing
dry_run: false                        # Report missing bindings without writing
backup: false                         # Keep settings.json.bak before rewriting
indent: 4                             # Spaces per level when rewriting (0 = compact)
fail_on_write_error: true             # Exit non-zero when the file cannot be saved

# Console
output: text                          # text | yaml | json
pause: false                          # Wait for a key press before exiting

# Watch mode
watch_debounce: 500ms                 # Quiet period before re-applying after a change
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"settings_path":       "",
		"variant":             VariantStable,
		"dry_run":             false,
		"backup":              false,
		"indent":              4,
		"fail_on_write_error": true,
		"output":              OutputText,
		"pause":               false,
		"watch_debounce":      (500 * time.Millisecond).String(),
	}
}
