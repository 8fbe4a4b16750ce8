// Package scaffold contains the collaborators shared by the scaffold
// commands: validation, templates, descriptor checkpoints and prompts.
package scaffold

import (
	"os"
	"path/filepath"
)

const (
	CMakeListsFile = "CMakeLists.txt"
	BackupSuffix   = "~"
	TemplateSuffix = ".in"

	DefaultConfigFile = "scaffold.yaml"

	// EnvUserArea selects an alternate installation root for new projects.
	EnvUserArea = "User_area"
	// EnvAuxPath lists extra auxiliary template directories.
	EnvAuxPath = "ELEMENTS_AUX_PATH"
	// EnvNamingDB points at the naming registry file.
	EnvNamingDB = "ELEMENTS_NAMING_DB"
	// EnvConfig points at the configuration file.
	EnvConfig = "SCAFFOLD_CONFIG"
)

// DestinationRoot returns $User_area when set, otherwise the working
// directory.
func DestinationRoot() (string, error) {
	if area := os.Getenv(EnvUserArea); area != "" {
		return filepath.Clean(area), nil
	}

	return os.Getwd()
}

// BackupPath returns the checkpoint path for a descriptor file.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// FinalName strips the template suffix from an auxiliary file name.
func FinalName(name string) string {
	if ext := filepath.Ext(name); ext == TemplateSuffix {
		return name[:len(name)-len(ext)]
	}

	return name
}

// DefaultConfigPath returns $SCAFFOLD_CONFIG when set, otherwise
// DefaultConfigFile.
func DefaultConfigPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	return DefaultConfigFile
}
