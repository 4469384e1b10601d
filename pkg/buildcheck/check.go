// Package buildcheck exercises the real production build of the site:
// npm run build into the bundler's output directory. The build is the one
// expensive local step, so missing node_modules only warns and the build
// command itself runs under a generous timeout.
package buildcheck

import (
	"context"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/execx"
	"github.com/vertti/shipcheck/pkg/filecheck"
	"github.com/vertti/shipcheck/pkg/resourcecheck"
)

// DefaultBuildTimeout bounds npm run build.
const DefaultBuildTimeout = 5 * time.Minute

// Check runs the local production build and inspects its output.
type Check struct {
	Dir         string               // project directory
	BuildDir    string               // output directory name, e.g. "dist"
	MinFreeDisk uint64               // free-disk warning threshold in bytes (0 disables)
	Timeout     time.Duration        // build timeout (default: DefaultBuildTimeout)
	Runner      execx.Runner         // injected for testing
	FS          FileSystem           // injected for testing
	Disk        resourcecheck.Checker // injected for testing; nil disables
}

// Run executes the build check.
func (c *Check) Run() []check.Result {
	var results []check.Result

	manifest := filepath.Join(c.Dir, "package.json")
	data, err := c.FS.ReadFile(manifest)
	if err != nil {
		return []check.Result{check.Failf("build.manifest", "package.json", "unreadable: %v", err)}
	}

	script := gjson.GetBytes(data, "scripts.build")
	if !script.Exists() {
		return []check.Result{
			check.Failf("build.script", "build script", "no scripts.build in package.json"),
		}
	}
	results = append(results,
		check.Passf("build.script", "build script", "%s", script.String()))

	if _, err := c.FS.Stat(filepath.Join(c.Dir, "node_modules")); err != nil {
		results = append(results, check.Warn("build.deps", "dependencies",
			"node_modules not found").AddDetail("run npm install first"))
	} else {
		results = append(results, check.Pass("build.deps", "dependencies", "node_modules present"))
	}

	if c.Disk != nil && c.MinFreeDisk > 0 {
		results = append(results, c.diskResult())
	}

	results = append(results, c.buildResults()...)
	return results
}

// diskResult warns when free disk space is below the configured threshold.
func (c *Check) diskResult() check.Result {
	const id, name = "build.disk", "disk space"

	free, err := c.Disk.FreeDiskSpace(c.Dir)
	if err != nil {
		return check.Warnf(id, name, "not checked: %v", err)
	}
	if free < c.MinFreeDisk {
		return check.Warnf(id, name, "only %s free, need %s",
			resourcecheck.FormatSize(free), resourcecheck.FormatSize(c.MinFreeDisk))
	}
	return check.Passf(id, name, "%s free", resourcecheck.FormatSize(free))
}

// buildResults runs npm run build and, on success, inspects the output
// directory. The output checks are skipped when the directory is absent.
func (c *Check) buildResults() []check.Result {
	const id, name = "build.compile", "npm run build"

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultBuildTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, stderr, err := c.Runner.Run(ctx, c.Dir, "npm", "run", "build")
	if err != nil {
		if execx.TimedOut(ctx) {
			return []check.Result{check.Failf(id, name, "timed out after %s", timeout)}
		}
		r := check.Fail(id, name, "build failed", err)
		for _, line := range execx.Tail(stderr, 5) {
			r = r.AddDetail(line)
		}
		return []check.Result{r}
	}
	results := []check.Result{check.Pass(id, name, "succeeded")}

	dist := filepath.Join(c.Dir, c.BuildDir)
	if _, err := c.FS.Stat(dist); err != nil {
		return results
	}

	if size, err := c.FS.DirSize(dist); err == nil {
		results = append(results, check.Passf("build.output", "build output",
			"%s is %s", c.BuildDir, resourcecheck.FormatSize(uint64(size)))) // #nosec G115 -- sizes are non-negative
	} else {
		results = append(results, check.Passf("build.output", "build output", "%s present", c.BuildDir))
	}

	if _, err := c.FS.Stat(filepath.Join(dist, "index.html")); err != nil {
		results = append(results, check.Failf("build.entry", "entry page",
			"index.html missing from %s", c.BuildDir))
	} else {
		results = append(results, check.Pass("build.entry", "entry page", "index.html present"))
	}
	return results
}

// MinifyCheck inspects the bundler config for an explicit minify setting.
// Textual heuristic; vite minifies with esbuild by default in production
// builds, so absence is only a warning.
type MinifyCheck struct {
	Path string               // bundler config path, e.g. vite.config.js
	FS   filecheck.FileSystem // injected for testing
}

// Run executes the minify check.
func (c *MinifyCheck) Run() []check.Result {
	const id, name = "perf.minify", "minification"

	ok, err := filecheck.Contains(c.FS, c.Path, "minify")
	switch {
	case err != nil:
		return []check.Result{check.Warnf(id, name, "not checked: %v", err)}
	case ok:
		return []check.Result{check.Pass(id, name, "configured")}
	default:
		return []check.Result{
			check.Warn(id, name, "no explicit minify setting").
				AddDetail("vite minifies with esbuild by default in production builds"),
		}
	}
}
