package entity

import "fmt"

// PermissionState is the device-location authorization state
type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionRequesting
	PermissionGranted
	PermissionDenied
)

var permissionStateNames = map[PermissionState]string{
	PermissionUnknown:    "unknown",
	PermissionRequesting: "requesting",
	PermissionGranted:    "granted",
	PermissionDenied:     "denied",
}

func (s PermissionState) String() string {
	if name, ok := permissionStateNames[s]; ok {
		return name
	}

	return "invalid"
}

// MarshalText renders the state by name in JSON payloads
func (s PermissionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Granted and Denied are only reachable from Requesting.
func (s PermissionState) CanTransitionTo(next PermissionState) bool {
	switch next {
	case PermissionRequesting:
		return s == PermissionUnknown || s == PermissionDenied || s == PermissionGranted
	case PermissionGranted, PermissionDenied:
		return s == PermissionRequesting
	default:
		return false
	}
}

// UnmarshalText parses a state name
func (s *PermissionState) UnmarshalText(text []byte) error {
	for state, name := range permissionStateNames {
		if name == string(text) {
			*s = state

			return nil
		}
	}

	return fmt.Errorf("unknown permission state %q", string(text))
}
