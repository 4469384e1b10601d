package check

import "fmt"

// Status classifies the outcome of a check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
)

// Result holds the outcome of a single check.
type Result struct {
	ID      string   // stable identifier, e.g. "docker.daemon"
	Name    string   // human-readable name, e.g. "Docker daemon"
	Status  Status   // PASS, FAIL or WARN
	Message string   // one-line outcome, e.g. "daemon is reachable"
	Details []string // extra context lines
	Err     error    // underlying error for failures
}

// Passed returns true if the check passed.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}

// Failed returns true if the check failed. Warnings are not failures.
func (r Result) Failed() bool {
	return r.Status == StatusFail
}

// Pass builds a passing result.
func Pass(id, name, message string) Result {
	return Result{ID: id, Name: name, Status: StatusPass, Message: message}
}

// Passf builds a passing result with a formatted message.
func Passf(id, name, format string, args ...any) Result {
	return Pass(id, name, fmt.Sprintf(format, args...))
}

// Warn builds a warning result.
func Warn(id, name, message string) Result {
	return Result{ID: id, Name: name, Status: StatusWarn, Message: message}
}

// Warnf builds a warning result with a formatted message.
func Warnf(id, name, format string, args ...any) Result {
	return Warn(id, name, fmt.Sprintf(format, args...))
}

// Fail builds a failed result. err may be nil when the message says it all.
func Fail(id, name, message string, err error) Result {
	return Result{ID: id, Name: name, Status: StatusFail, Message: message, Err: err}
}

// Failf builds a failed result with a formatted message, which also becomes
// the underlying error.
func Failf(id, name, format string, args ...any) Result {
	return Fail(id, name, fmt.Sprintf(format, args...), fmt.Errorf(format, args...))
}
