package inventory

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"hycu-check/src/hycuapi"
)

// Field names in HYCU API entities.
const (
	fieldUUID             = "uuid"
	fieldVMName           = "vmName"
	fieldName             = "name"
	fieldComplianceReason = "complianceReason"
	fieldStatus           = "status"
	fieldHealth           = "health"
	fieldRestorePoint     = "restorePointInMillis"
	fieldEndTime          = "endTime"
	fieldStartTime        = "startTime"
	fieldCreationTime     = "creationTime"
)

// TimeLayout is the layout of HYCU string timestamps once the fractional
// seconds are stripped. They carry no zone and are read as UTC.
const TimeLayout = "2006-01-02T15:04:05"

// DisplayTimeLayout renders resolved instants in messages.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// stringTimeFields are tried in order when no epoch timestamp is present.
var stringTimeFields = []string{fieldEndTime, fieldStartTime, fieldCreationTime}

// NormalizeVM maps a raw VM entity. excludeReason is matched exactly against
// complianceReason.
func NormalizeVM(raw hycuapi.Object, excludeReason string) VM {
	id, idErr := checkID(stringField(raw, fieldUUID))
	return VM{
		UUID:     id,
		IDIssue:  idErr,
		Name:     nameOr(stringField(raw, fieldVMName)),
		Excluded: isExcluded(raw, excludeReason),
		Raw:      raw,
	}
}

// NormalizeTarget maps a raw target entity. Health and status tokens are
// upper-cased; absent values become "UNKNOWN".
func NormalizeTarget(raw hycuapi.Object, excludeReason string) Target {
	id, idErr := checkID(stringField(raw, fieldUUID))
	return Target{
		UUID:     id,
		IDIssue:  idErr,
		Name:     nameOr(stringField(raw, fieldName)),
		Health:   tokenOr(stringField(raw, fieldHealth)),
		Status:   tokenOr(stringField(raw, fieldStatus)),
		Excluded: isExcluded(raw, excludeReason),
		Raw:      raw,
	}
}

// NormalizeBackup maps a raw backup entity and resolves its timestamp:
// restorePointInMillis when non-zero, else the first non-empty of endTime,
// startTime and creationTime.
func NormalizeBackup(raw hycuapi.Object) Backup {
	var b Backup
	b.Status = stringField(raw, fieldStatus)
	if b.Status == "" {
		b.Status = "UNKNOWN"
		b.Missing = append(b.Missing, &MissingDataError{Field: fieldStatus, Reason: "absent"})
	}

	if ms, ok := numberField(raw, fieldRestorePoint); ok && ms != 0 {
		b.Time = time.UnixMilli(ms).UTC()
		b.TimeText = b.Time.Format(DisplayTimeLayout)
		b.Source = SourceEpochMillis
		return b
	}

	for _, f := range stringTimeFields {
		s := stringField(raw, f)
		if s == "" {
			continue
		}
		b.Source = SourceISOString
		b.TimeText = s
		t, err := ParseTime(s)
		if err != nil {
			b.Missing = append(b.Missing, &MissingDataError{Field: f, Reason: err.Error()})
			return b
		}
		b.Time = t
		return b
	}

	b.Missing = append(b.Missing, &MissingDataError{Field: fieldRestorePoint, Reason: "no timestamp field present"})
	return b
}

// ParseTime parses a HYCU string timestamp, ignoring anything from the first
// '.' on.
func ParseTime(s string) (time.Time, error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}

func isExcluded(raw hycuapi.Object, reason string) bool {
	if reason == "" {
		return false
	}
	v, ok := raw[fieldComplianceReason].(string)
	return ok && v == reason
}

// checkID trims the identifier and reports when it is absent or not shaped
// like a UUID. The identifier itself is passed through untouched: it is used
// verbatim in API paths and service names.
func checkID(s string) (string, *MissingDataError) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &MissingDataError{Field: fieldUUID, Reason: "absent"}
	}
	if _, err := uuid.Parse(s); err != nil {
		return s, &MissingDataError{Field: fieldUUID, Reason: "not a UUID: " + err.Error()}
	}
	return s, nil
}

func nameOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownName
	}
	return s
}

func tokenOr(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

func stringField(raw hycuapi.Object, key string) string {
	s, _ := raw[key].(string)
	return s
}

// numberField reads an integral JSON number, whatever the decoder produced.
func numberField(raw hycuapi.Object, key string) (int64, bool) {
	switch v := raw[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(v)
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64/2 {
		return 0, false
	}
	return int64(f), true
}
