// Package archierr defines the signed status-code taxonomy every
// archipelago entry point returns (spec §7): zero for success, negative
// for a recognised error kind, positive for an interface-defined warning.
package archierr

import "fmt"

// Status is the signed status code returned by every interface entry
// point and by the registry/HSP engines.
type Status int32

// Well-known status values (spec §7). Positive values are reserved for
// interface-defined warnings and are not enumerated here.
const (
	OK Status = 0

	Misuse    Status = -1 // caller violated a precondition
	Value     Status = -2 // a parameter/slot value is present but invalid
	Key       Status = -3 // a parameter/slot name is not recognised
	Interface Status = -4 // a required entry point/capability is missing
	Resource  Status = -5 // an OS-level resource could not be obtained
	NoMemory  Status = -6 // allocation failed
	Format    Status = -7 // external data is structurally invalid
	Failure   Status = -8 // catch-all, must be rare and logged
)

var names = map[Status]string{
	OK:        "ok",
	Misuse:    "misuse",
	Value:     "value",
	Key:       "key",
	Interface: "interface",
	Resource:  "resource",
	NoMemory:  "no-memory",
	Format:    "format",
	Failure:   "failure",
}

// String renders a known status by name, a positive status as a warning
// code, and any other negative status as a numeric unknown-error code.
func (s Status) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	if s > 0 {
		return fmt.Sprintf("warning(%d)", int32(s))
	}
	return fmt.Sprintf("error(%d)", int32(s))
}

// Ok reports whether s is the success status.
func (s Status) Ok() bool { return s == OK }

// IsError reports whether s is a negative (failing) status.
func (s Status) IsError() bool { return s < 0 }

// IsWarning reports whether s is a positive (interface-defined, non-fatal)
// status.
func (s Status) IsWarning() bool { return s > 0 }

// ExitCode implements spec §6.2's process exit-code mapping: 0 on success
// or warning, and 64-s for a negative internal status s (so -6 maps to
// 70).
func ExitCode(s Status) int {
	if s >= OK {
		return 0
	}
	return 64 - int(s)
}
