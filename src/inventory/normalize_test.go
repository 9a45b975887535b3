package inventory_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hycu-check/src/config"
	"hycu-check/src/hycuapi"
	"hycu-check/src/inventory"
)

func TestNormalizeVM_Exclusion(t *testing.T) {
	reason := config.DefaultExcludeReason
	cases := []struct {
		name string
		raw  hycuapi.Object
		want bool
	}{
		{"exact", hycuapi.Object{"complianceReason": reason}, true},
		{"absent", hycuapi.Object{}, false},
		{"null", hycuapi.Object{"complianceReason": nil}, false},
		{"case differs", hycuapi.Object{"complianceReason": "the exclude policy is assigned."}, false},
		{"other reason", hycuapi.Object{"complianceReason": "RPO not met"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.NormalizeVM(tc.raw, reason).Excluded)
		})
	}
}

func TestNormalizeVM_MissingFields(t *testing.T) {
	vm := inventory.NormalizeVM(hycuapi.Object{"uuid": nil, "vmName": 42}, config.DefaultExcludeReason)
	assert.Equal(t, "", vm.UUID)
	assert.Equal(t, inventory.UnknownName, vm.Name)
	assert.False(t, vm.Excluded)
}

func TestNormalizeVM_IdentifierKeptVerbatim(t *testing.T) {
	for _, id := range []string{
		"6F9619FF-8B86-D011-B42D-00C04FC964FF",
		"6F9619FF8B86D011B42D00C04FC964FF",
		"{6f9619ff-8b86-d011-b42d-00c04fc964ff}",
		"urn:uuid:6f9619ff-8b86-d011-b42d-00c04fc964ff",
	} {
		vm := inventory.NormalizeVM(hycuapi.Object{"uuid": " " + id + " ", "vmName": "db01"}, "")
		assert.Equal(t, id, vm.UUID)
		assert.Nil(t, vm.IDIssue, "%s parses as a UUID", id)
	}
}

func TestNormalizeVM_IdentifierIssues(t *testing.T) {
	vm := inventory.NormalizeVM(hycuapi.Object{"uuid": "vm-42"}, "")
	assert.Equal(t, "vm-42", vm.UUID)
	require.NotNil(t, vm.IDIssue)
	assert.Equal(t, "uuid", vm.IDIssue.Field)

	vm = inventory.NormalizeVM(hycuapi.Object{}, "")
	assert.Equal(t, "", vm.UUID)
	require.NotNil(t, vm.IDIssue)
	assert.Equal(t, "absent", vm.IDIssue.Reason)

	tg := inventory.NormalizeTarget(hycuapi.Object{"uuid": "ABCDEF01-0000-0000-0000-000000000000"}, "")
	assert.Equal(t, "ABCDEF01-0000-0000-0000-000000000000", tg.UUID)
	assert.Nil(t, tg.IDIssue)
}

func TestNormalizeTarget(t *testing.T) {
	tg := inventory.NormalizeTarget(hycuapi.Object{"name": "nfs 01", "health": "green", "status": "Active"}, "")
	assert.Equal(t, "nfs 01", tg.Name)
	assert.Equal(t, "GREEN", tg.Health)
	assert.Equal(t, "ACTIVE", tg.Status)

	tg = inventory.NormalizeTarget(hycuapi.Object{}, "")
	assert.Equal(t, inventory.UnknownName, tg.Name)
	assert.Equal(t, "UNKNOWN", tg.Health)
	assert.Equal(t, "UNKNOWN", tg.Status)
}

func TestNormalizeBackup_EpochWins(t *testing.T) {
	b := inventory.NormalizeBackup(hycuapi.Object{
		"status":               "OK",
		"restorePointInMillis": json.Number("1760000000000"),
		"endTime":              "2001-01-01T00:00:00",
	})
	require.True(t, b.HasTime())
	assert.Equal(t, inventory.SourceEpochMillis, b.Source)
	assert.Equal(t, time.UnixMilli(1760000000000).UTC(), b.Time)
	assert.Equal(t, "2025-10-09 08:53:20", b.TimeText)
	assert.Empty(t, b.Missing)
}

func TestNormalizeBackup_EpochAsFloat(t *testing.T) {
	b := inventory.NormalizeBackup(hycuapi.Object{"status": "OK", "restorePointInMillis": float64(1760000000000)})
	assert.Equal(t, inventory.SourceEpochMillis, b.Source)
	assert.Equal(t, int64(1760000000000), b.Time.UnixMilli())
}

func TestNormalizeBackup_ZeroEpochFallsBack(t *testing.T) {
	b := inventory.NormalizeBackup(hycuapi.Object{
		"status":               "WARNING",
		"restorePointInMillis": json.Number("0"),
		"endTime":              "",
		"startTime":            "2025-03-04T05:06:07.123456",
		"creationTime":         "2025-01-01T00:00:00",
	})
	require.True(t, b.HasTime())
	assert.Equal(t, inventory.SourceISOString, b.Source)
	assert.Equal(t, time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC), b.Time)
	assert.Equal(t, "2025-03-04T05:06:07.123456", b.TimeText)
}

func TestNormalizeBackup_StringPriority(t *testing.T) {
	b := inventory.NormalizeBackup(hycuapi.Object{
		"endTime":      "2025-03-05T00:00:00",
		"startTime":    "2025-03-04T00:00:00",
		"creationTime": "2025-03-03T00:00:00",
	})
	assert.Equal(t, 5, b.Time.Day())

	b = inventory.NormalizeBackup(hycuapi.Object{"creationTime": "2025-03-03T00:00:00"})
	assert.Equal(t, 3, b.Time.Day())
}

func TestNormalizeBackup_UnparsableTime(t *testing.T) {
	b := inventory.NormalizeBackup(hycuapi.Object{"status": "OK", "endTime": "yesterday"})
	assert.False(t, b.HasTime())
	assert.Equal(t, inventory.SourceISOString, b.Source)
	assert.Equal(t, "yesterday", b.TimeText)
	require.Len(t, b.Missing, 1)
	assert.Equal(t, "endTime", b.Missing[0].Field)
}

func TestNormalizeBackup_NothingPresent(t *testing.T) {
	b := inventory.NormalizeBackup(hycuapi.Object{})
	assert.Equal(t, "UNKNOWN", b.Status)
	assert.Equal(t, inventory.SourceAbsent, b.Source)
	assert.False(t, b.HasTime())
	assert.Equal(t, "", b.TimeText)
	assert.Len(t, b.Missing, 2)
}

func TestParseTime(t *testing.T) {
	got, err := inventory.ParseTime("2024-12-31T23:59:59.999")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), got)

	_, err = inventory.ParseTime("2024-12-31 23:59:59")
	require.Error(t, err)
}
