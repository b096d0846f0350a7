package failure

type Severity int

// Severity tells a caller whether a failed stage may be attempted again
// with the same input. Sanitization failures are always fatal for that
// input; storage failures may be recoverable.
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

type ClassifiedError interface {
	error
	Severity() Severity
}
