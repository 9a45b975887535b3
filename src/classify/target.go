package classify

import (
	"fmt"

	"hycu-check/src/inventory"
)

// Target classifies a backup target from its health and operational status.
// RED and YELLOW win regardless of status; GREEN is only OK when ACTIVE.
func Target(t inventory.Target) Result {
	var sev Severity
	switch ParseHealth(t.Health) {
	case HealthRed:
		sev = Critical
	case HealthYellow:
		sev = Warning
	case HealthGreen:
		if ParseOperationalStatus(t.Status) == OperationalActive {
			sev = OK
		} else {
			sev = Unknown
		}
	default:
		sev = Unknown
	}
	return Result{
		Severity: sev,
		Message:  fmt.Sprintf("%s health=%s status=%s", sev, t.Health, t.Status),
	}
}
