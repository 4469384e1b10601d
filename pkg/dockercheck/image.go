package dockercheck

import (
	"context"
	"strings"
	"time"

	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/execx"
)

// DefaultTag names the throwaway image built by ImageCheck.
const DefaultTag = "shipcheck-build-test"

// DefaultBuildTimeout bounds the image build.
const DefaultBuildTimeout = 5 * time.Minute

// ImageCheck builds the production image from the local build file, reports
// its size and removes it again. The throwaway image is removed regardless
// of the build outcome; a failed removal is not itself a reported check.
type ImageCheck struct {
	Dir        string        // build context directory
	Dockerfile string        // build file path
	Tag        string        // image tag (default: DefaultTag)
	Timeout    time.Duration // build timeout (default: DefaultBuildTimeout)
	Runner     execx.Runner  // injected for testing
}

// Run executes the image build check.
func (c *ImageCheck) Run() []check.Result {
	const id, name = "image.build", "production image"

	if _, err := c.Runner.LookPath("docker"); err != nil {
		return []check.Result{check.Warn(id, name, "docker not available, image build not verified")}
	}

	tag := c.Tag
	if tag == "" {
		tag = DefaultTag
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultBuildTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	defer c.cleanup(tag)

	_, stderr, err := c.Runner.Run(ctx, "", "docker", "build", "-t", tag, "-f", c.Dockerfile, c.Dir)
	if err != nil {
		if execx.TimedOut(ctx) {
			return []check.Result{check.Failf(id, name, "build timed out after %s", timeout)}
		}
		r := check.Fail(id, name, "build failed", err)
		for _, line := range execx.Tail(stderr, 5) {
			r = r.AddDetail(line)
		}
		return []check.Result{r}
	}

	r := check.Pass(id, name, "builds successfully")
	if size := c.imageSize(tag); size != "" {
		r = r.AddDetailf("image size: %s", size)
	}
	return []check.Result{r}
}

// imageSize asks docker for the size of the freshly built image.
func (c *ImageCheck) imageSize(tag string) string {
	ctx, cancel := context.WithTimeout(context.Background(), execx.DefaultTimeout)
	defer cancel()
	stdout, _, err := c.Runner.Run(ctx, "", "docker", "images", "--format", "{{.Size}}", tag)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(stdout)
}

// cleanup removes the throwaway image, best-effort. It uses its own context
// because the build context may already be expired.
func (c *ImageCheck) cleanup(tag string) {
	ctx, cancel := context.WithTimeout(context.Background(), execx.DefaultTimeout)
	defer cancel()
	_, _, _ = c.Runner.Run(ctx, "", "docker", "rmi", "-f", tag)
}
