package report

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"hycu-check/src/classify"
)

var unsafeServiceChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// idPrefixLen is how much of an entity identifier is appended to its
// service name so equal display names stay distinct.
const idPrefixLen = 8

// Line is one local-check result.
type Line struct {
	Severity classify.Severity `json:"state"`
	Service  string            `json:"service"`
	Message  string            `json:"message"`
}

// ServiceName builds a service name from parts joined by '_', each sanitized
// to [A-Za-z0-9_-], then suffixed with the first characters of id when id is
// not empty.
func ServiceName(id string, parts ...string) string {
	clean := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p == "" {
			continue
		}
		clean = append(clean, Sanitize(p))
	}
	if id != "" {
		if len(id) > idPrefixLen {
			id = id[:idPrefixLen]
		}
		clean = append(clean, Sanitize(id))
	}
	return strings.Join(clean, "_")
}

// Sanitize replaces every character outside [A-Za-z0-9_-] with '_'.
func Sanitize(s string) string {
	return unsafeServiceChars.ReplaceAllString(s, "_")
}

// Report collects lines in the order entities were discovered.
type Report struct {
	lines []Line
}

// New returns an empty report.
func New() *Report { return &Report{} }

// Add appends a line.
func (r *Report) Add(sev classify.Severity, service, message string) {
	r.lines = append(r.lines, Line{Severity: sev, Service: service, Message: message})
}

// Merge appends all lines of o.
func (r *Report) Merge(o *Report) {
	if o == nil {
		return
	}
	r.lines = append(r.lines, o.lines...)
}

// Lines returns a copy of the collected lines.
func (r *Report) Lines() []Line {
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len returns the number of lines.
func (r *Report) Len() int { return len(r.lines) }

// Exit is the numeric maximum severity over all lines, or Unknown when the
// report is empty.
func (r *Report) Exit() classify.Severity {
	sev := make([]classify.Severity, 0, len(r.lines))
	for _, l := range r.lines {
		sev = append(sev, l.Severity)
	}
	return classify.Worst(sev...)
}

// WriteCheckmk renders "<state> <service> - <message>" lines. " - " inside a
// message would be read as a separator by the agent, so it becomes " | ";
// newlines are flattened.
func (r *Report) WriteCheckmk(w io.Writer) error {
	for _, l := range r.lines {
		msg := strings.ReplaceAll(l.Message, " - ", " | ")
		msg = strings.Join(strings.Fields(msg), " ")
		if _, err := fmt.Fprintf(w, "%d %s - %s\n", int(l.Severity), l.Service, msg); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the lines and the exit severity as an indented document.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	lines := r.lines
	if lines == nil {
		lines = []Line{}
	}
	return enc.Encode(struct {
		Exit  classify.Severity `json:"exit"`
		Lines []Line            `json:"lines"`
	}{Exit: r.Exit(), Lines: lines})
}
