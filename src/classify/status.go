package classify

// BackupStatus is the closed set of HYCU backup states we recognize.
type BackupStatus int

const (
	BackupUnrecognized BackupStatus = iota
	BackupOK
	BackupWarning
	BackupFatal
	BackupInProgress
	BackupUnknown
)

var backupStatuses = map[string]BackupStatus{
	"OK":          BackupOK,
	"WARNING":     BackupWarning,
	"FATAL":       BackupFatal,
	"IN_PROGRESS": BackupInProgress,
	"UNKNOWN":     BackupUnknown,
}

// ParseBackupStatus matches the raw token exactly.
func ParseBackupStatus(s string) BackupStatus {
	return backupStatuses[s]
}

// Severity is the baseline severity of a backup state, before age escalation.
func (b BackupStatus) Severity() Severity {
	switch b {
	case BackupOK:
		return OK
	case BackupWarning, BackupInProgress:
		return Warning
	case BackupFatal:
		return Critical
	}
	return Unknown
}

// Health is the closed set of target health colors.
type Health int

const (
	HealthUnrecognized Health = iota
	HealthGreen
	HealthYellow
	HealthRed
)

// ParseHealth expects an upper-case token.
func ParseHealth(s string) Health {
	switch s {
	case "GREEN":
		return HealthGreen
	case "YELLOW":
		return HealthYellow
	case "RED":
		return HealthRed
	}
	return HealthUnrecognized
}

// OperationalStatus only distinguishes ACTIVE from everything else.
type OperationalStatus int

const (
	OperationalUnrecognized OperationalStatus = iota
	OperationalActive
)

// ParseOperationalStatus expects an upper-case token.
func ParseOperationalStatus(s string) OperationalStatus {
	if s == "ACTIVE" {
		return OperationalActive
	}
	return OperationalUnrecognized
}
