// Package dockercheck verifies the container runtime and the production
// image build.
package dockercheck

import (
	"context"
	"regexp"
	"time"

	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/execx"
	"github.com/vertti/shipcheck/pkg/filecheck"
)

// InstallCheck verifies that the docker CLI exists and its daemon answers.
type InstallCheck struct {
	Timeout time.Duration // timeout for docker info (default: execx.DefaultTimeout)
	Runner  execx.Runner  // injected for testing
}

// Run executes the docker availability check.
func (c *InstallCheck) Run() []check.Result {
	path, err := c.Runner.LookPath("docker")
	if err != nil {
		return []check.Result{
			check.Fail("docker.cli", "docker CLI", "not found in PATH", err).
				AddDetail("install docker before deploying"),
		}
	}
	results := []check.Result{
		check.Pass("docker.cli", "docker CLI", "installed").AddDetailf("path: %s", path),
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = execx.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, stderr, err := c.Runner.Run(ctx, "", "docker", "info")
	switch {
	case err == nil:
		results = append(results, check.Pass("docker.daemon", "docker daemon", "reachable"))
	case execx.TimedOut(ctx):
		results = append(results, check.Failf("docker.daemon", "docker daemon",
			"did not respond within %s", timeout))
	default:
		r := check.Fail("docker.daemon", "docker daemon", "not reachable", err)
		for _, line := range execx.Tail(stderr, 2) {
			r = r.AddDetail(line)
		}
		results = append(results, r)
	}
	return results
}

var userRe = regexp.MustCompile(`(?m)^\s*USER\s+(\S+)`)

// UserCheck verifies the image does not run as root. Textual heuristic on
// the build file: a USER directive naming anything but root passes.
type UserCheck struct {
	Dockerfile string               // path to the build file
	FS         filecheck.FileSystem // injected for testing
}

// Run executes the non-root user check.
func (c *UserCheck) Run() []check.Result {
	const id, name = "hardening.user", "container user"

	data, err := c.FS.ReadFile(c.Dockerfile)
	if err != nil {
		return []check.Result{check.Warnf(id, name, "not checked: %v", err)}
	}
	m := userRe.FindSubmatch(data)
	switch {
	case m == nil:
		return []check.Result{
			check.Warn(id, name, "no USER directive, container runs as root").
				AddDetail("add a non-root USER to the Dockerfile"),
		}
	case string(m[1]) == "root":
		return []check.Result{check.Warn(id, name, "USER is root")}
	default:
		return []check.Result{check.Passf(id, name, "runs as %s", m[1])}
	}
}
