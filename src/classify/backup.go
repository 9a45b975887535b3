package classify

import (
	"fmt"
	"time"

	"hycu-check/src/inventory"
)

// NoBackupMessage is reported for VMs without any backup.
const NoBackupMessage = "no backup found"

// Options holds the inputs of backup classification that are not part of the
// record itself.
type Options struct {
	// CriticalDays is the largest age, in whole days, that is not stale.
	CriticalDays int
	// Now is the reference instant for age computation.
	Now time.Time
}

// BackupInput is everything known about one VM's backup history.
type BackupInput struct {
	// Err is the error of the history fetch, if it failed.
	Err error
	// Total is the grand total of backups HYCU reports for the VM.
	Total int
	// Latest is the first entry returned, trusted to be the most recent.
	Latest *inventory.Backup
}

// Backup classifies a VM from its backup history.
func Backup(in BackupInput, opts Options) Result {
	if in.Err != nil {
		return Result{Severity: Unknown, Message: "backup history unavailable: " + in.Err.Error()}
	}
	if in.Total == 0 || in.Latest == nil {
		return Result{Severity: Critical, Message: NoBackupMessage}
	}

	b := in.Latest
	sev := ParseBackupStatus(b.Status).Severity()

	if !b.HasTime() {
		if b.TimeText == "" {
			return Result{Severity: sev, Message: fmt.Sprintf("Backup %s (no backup date)", b.Status)}
		}
		// present but unparsable: report it raw, without an age
		return Result{Severity: sev, Message: fmt.Sprintf("Backup %s (%s)", b.Status, b.TimeText)}
	}

	age := AgeDays(opts.Now, b.Time)
	r := Result{Severity: sev, AgeDays: &age}
	if age > opts.CriticalDays {
		r.Severity = Critical
		r.Stale = true
		r.Message = fmt.Sprintf("Backup %s (%s) age=%dd (too old!)", b.Status, b.TimeText, age)
		return r
	}
	r.Message = fmt.Sprintf("Backup %s (%s) age=%dd", b.Status, b.TimeText, age)
	return r
}

// AgeDays returns the whole days elapsed from t to now, rounded down.
// A t in the future yields a negative age.
func AgeDays(now, t time.Time) int {
	const day = 24 * time.Hour
	d := now.Sub(t)
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}
