package parser

import "fmt"

type Severity int

const (
	SeverityFatal Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "fatal"
}

// Diagnostic is a fatal error or a warning attached to a source line.
// Line 0 means no line is known yet, e.g. the file could not be read.
type Diagnostic struct {
	Severity Severity
	File     string
	Line     int
	Message  string
}

func (d *Diagnostic) Error() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s (@%d)", d.Severity, d.Message, d.Line)
}

// WarningHandler receives non-fatal diagnostics as they are found.
type WarningHandler func(*Diagnostic)

func discardWarnings(*Diagnostic) {}
