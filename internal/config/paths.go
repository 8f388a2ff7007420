package config

// ProjectConfigPath returns the path to the project config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ".oasnotes.yml"
}

// LegacyProjectConfigPath returns the path to the legacy JSON config file.
func LegacyProjectConfigPath() string {
	return ".oasnotes.json"
}
