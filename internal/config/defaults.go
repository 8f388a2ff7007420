package config

// GetDefaultConfigTemplate returns a commented project config template
// written by 'oasnotes config init'.
func GetDefaultConfigTemplate() string {
	return `# oasnotes configuration
# Precedence: flags > OASNOTES_* environment > this file > defaults

# Spec files
previous_spec: openapi.yaml           # Baseline spec, replaced by current_spec after a roll
current_spec: openapi_new.yaml        # Spec being released

# Output
output: RELEASE_NOTES.md              # Markdown notes file (overwritten each run)

# Classification
ignored_fields:                       # Leaf keys whose changes are logged but not listed
  - description

# State
roll: true                            # Replace previous_spec with current_spec after writing notes
baseline_ref: ""                      # Read previous_spec from this git revision (disables roll)
git_dir: .                            # Repository used with baseline_ref
`
}

// GetDefaults returns the default configuration values. With no config
// file, environment, or flags these reproduce the fixed-path behavior:
// openapi.yaml vs openapi_new.yaml into RELEASE_NOTES.md, then roll.
func GetDefaults() map[string]any {
	return map[string]any{
		"previous_spec":  "openapi.yaml",
		"current_spec":   "openapi_new.yaml",
		"output":         "RELEASE_NOTES.md",
		"ignored_fields": []string{"description"},
		"roll":           true,
		"baseline_ref":   "",
		"git_dir":        ".",
	}
}
