package export

import "fmt"

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityInfo reports an expected omission (e.g. a table with no
	// business keys contributing no hub rows).
	SeverityInfo Severity = iota

	// SeverityWarning reports an omission the user probably wants to fix
	// (e.g. a hashdiff group skipped for lack of a business concept).
	SeverityWarning

	// SeverityError reports a model defect the compiler worked around
	// (e.g. duplicate hashkey names, unresolved link references).
	// Strict exports fail when any of these are present.
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic records why a table, group, or reference was omitted from (or
// degraded in) a relation. Exports never abort on model defects; they emit
// what they can and report the rest through diagnostics.
type Diagnostic struct {
	Severity Severity

	// Table is the qualified table name ("schema.table") the diagnostic
	// concerns.
	Table string

	// Subject identifies the group, column, or hashkey within the table,
	// if narrower than the table itself.
	Subject string

	// Reason is the human-readable explanation.
	Reason string
}

// String formats the diagnostic for log output.
func (d Diagnostic) String() string {
	if d.Subject != "" {
		return fmt.Sprintf("%s: %s (%s): %s", d.Severity, d.Table, d.Subject, d.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Table, d.Reason)
}

// HasErrors reports whether any diagnostic in the slice is error-severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
