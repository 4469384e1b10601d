// Package execx wraps external process invocation behind an injectable
// runner so checks can be tested without docker, openssl or npm installed.
package execx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single external command invocation.
const DefaultTimeout = 30 * time.Second

// Runner abstracts command execution for testability.
type Runner interface {
	// LookPath searches for an executable in PATH.
	LookPath(file string) (string, error)

	// Run executes a command in dir (empty means the current directory)
	// and returns its output. The command is killed when ctx expires.
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, err error)
}

// RealRunner implements Runner using actual OS commands.
type RealRunner struct{}

// LookPath searches for an executable in PATH.
func (r *RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (r *RealRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	// #nosec G204 -- intentional: the commands run here (docker, openssl,
	// npm) are the whole point of the checker.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	LookPathFunc func(file string) (string, error)
	RunFunc      func(ctx context.Context, dir, name string, args ...string) (string, string, error)
}

// LookPath calls the mock function.
func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

// Run calls the mock function.
func (m *MockRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	return m.RunFunc(ctx, dir, name, args...)
}

// TimedOut reports whether ctx expired, i.e. a command hit its deadline.
func TimedOut(ctx context.Context) bool {
	return ctx.Err() == context.DeadlineExceeded
}

// Tail returns the last n non-empty lines of command output, trimmed.
// Useful for surfacing the relevant part of a failed build's stderr.
func Tail(s string, n int) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
