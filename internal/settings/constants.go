// Package settings persists TUI preferences between sessions.
package settings

import "os"

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	// FileExtTOML is the file extension for TOML files.
	FileExtTOML = ".toml"
)

// Screen names stored as last_screen.
const (
	ScreenHome       = "home"
	ScreenProjects   = "projects"
	ScreenExperience = "experience"
	ScreenEducation  = "education"
	ScreenContact    = "contact"
)

// Sort direction constants.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)
