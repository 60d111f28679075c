package ramp

import _ "embed"

// Version is the library version, embedded from the VERSION file at the
// repository root. Callers should strings.TrimSpace it before display.
//
//go:embed VERSION
var Version string
