// Package lifecycle holds timing defaults shared by start/stop hooks and external calls.
package lifecycle

import "time"

const (
	// DefaultTimeout bounds fx OnStart/OnStop hooks.
	DefaultTimeout = 10 * time.Second

	// DefaultExternalCallTimeout bounds a single call to a platform or remote collaborator
	// (permission prompt, position fix, clinic directory, directions service).
	DefaultExternalCallTimeout = 12 * time.Second
)
