package classify

import "fmt"

// Severity is the local-check state. The numeric values are the contract with
// the monitoring agent and must not change.
type Severity int

const (
	OK       Severity = 0
	Warning  Severity = 1
	Critical Severity = 2
	Unknown  Severity = 3
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	case Unknown:
		return "UNKNOWN"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Worst returns the numerically highest severity, so Unknown outranks
// Critical. With no arguments it returns Unknown.
func Worst(s ...Severity) Severity {
	if len(s) == 0 {
		return Unknown
	}
	w := s[0]
	for _, v := range s[1:] {
		if v > w {
			w = v
		}
	}
	return w
}

// Result is the outcome of classifying one entity.
type Result struct {
	Severity Severity
	Message  string
	// AgeDays is set when a backup age was computed.
	AgeDays *int
	// Stale is true when the age exceeded the threshold.
	Stale bool
}
