// Package constant defines immutable application-level identifiers and defaults.
package constant

import _ "embed"

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "yogaland"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to the catalog API.
	UserAgent = App + "/" + Version
)

// GlobalWatchKey is the selection-history bucket used when no content context is known.
const GlobalWatchKey = "global"

// Repository hosts the releases checked by the version notifier.
const Repository = "yogaland/yogaland"

// Build metadata, set with -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Values of runtime.GOOS the launcher and the browser opener branch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)

// Logo is printed at the top of the root command's help.
//
//go:embed ascii.txt
var Logo string
