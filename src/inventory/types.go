package inventory

import (
	"time"

	"hycu-check/src/hycuapi"
)

// UnknownName is used when an entity has no display name.
const UnknownName = "Unknown"

// VM is a normalized HYCU virtual machine.
type VM struct {
	UUID     string
	// IDIssue is set when UUID is empty or not UUID-shaped.
	IDIssue  *MissingDataError
	Name     string
	Excluded bool
	Raw      hycuapi.Object
}

// Target is a normalized HYCU backup target.
type Target struct {
	UUID     string
	IDIssue  *MissingDataError
	Name     string
	Health   string
	Status   string
	Excluded bool
	Raw      hycuapi.Object
}

// TimeSource records which field a backup timestamp came from.
type TimeSource int

const (
	SourceAbsent TimeSource = iota
	SourceEpochMillis
	SourceISOString
)

func (s TimeSource) String() string {
	switch s {
	case SourceEpochMillis:
		return "epochMillis"
	case SourceISOString:
		return "isoString"
	default:
		return "absent"
	}
}

// Backup is the normalized most recent backup of a VM.
type Backup struct {
	// Status is the raw status token, "UNKNOWN" when absent.
	Status string
	// Time is the backup instant in UTC; zero when unavailable or unparsable.
	Time time.Time
	// TimeText is the human form: formatted Time, the raw string when it
	// could not be parsed, or empty when no timestamp field was present.
	TimeText string
	Source   TimeSource
	// Missing lists optional fields that were absent or malformed.
	Missing []*MissingDataError
}

// HasTime reports whether an instant is available for age computation.
func (b Backup) HasTime() bool { return !b.Time.IsZero() }

// MissingDataError describes an optional field that was absent or malformed.
// It degrades classification; it never aborts it.
type MissingDataError struct {
	Field  string
	Reason string
}

func (e *MissingDataError) Error() string { return e.Field + ": " + e.Reason }
