// Package nginxcheck validates the nginx configuration of a static site
// deployment. Apart from the syntax test, every check here is a textual
// containment heuristic: a directive that nginx pulls in through an include
// file is not seen and gets reported as a warning.
package nginxcheck

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/execx"
	"github.com/vertti/shipcheck/pkg/filecheck"
)

// DefaultImage is the container image used for the config syntax test.
const DefaultImage = "nginx:alpine"

// SyntaxCheck runs nginx's built-in config test inside an ephemeral
// container so nginx does not need to be installed locally.
type SyntaxCheck struct {
	ConfPath string        // path to nginx.conf
	Image    string        // nginx image (default: DefaultImage)
	Timeout  time.Duration // timeout for the container run (default: execx.DefaultTimeout)
	Runner   execx.Runner  // injected for testing
}

// Run executes the syntax check.
func (c *SyntaxCheck) Run() []check.Result {
	const id, name = "nginx.syntax", "nginx.conf syntax"

	if _, err := c.Runner.LookPath("docker"); err != nil {
		return []check.Result{check.Warn(id, name, "docker not available, syntax not verified")}
	}

	abs, err := filepath.Abs(c.ConfPath)
	if err != nil {
		return []check.Result{check.Failf(id, name, "cannot resolve config path: %v", err)}
	}

	image := c.Image
	if image == "" {
		image = DefaultImage
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = execx.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, stderr, err := c.Runner.Run(ctx, "", "docker", "run", "--rm",
		"-v", abs+":/etc/nginx/conf.d/default.conf:ro", image, "nginx", "-t")
	if err != nil {
		if execx.TimedOut(ctx) {
			return []check.Result{check.Failf(id, name, "config test timed out after %s", timeout)}
		}
		r := check.Fail(id, name, "config test failed", err)
		for _, line := range execx.Tail(stderr, 3) {
			r = r.AddDetail(line)
		}
		return []check.Result{r}
	}
	return []check.Result{check.Pass(id, name, "syntax is ok")}
}

var spaFallbackRe = regexp.MustCompile(`try_files[^;]*/index\.html`)

// ContentCheck runs the static-serving heuristics: leftover proxy wiring
// and the SPA fallback directive.
type ContentCheck struct {
	ConfPath string               // path to nginx.conf
	FS       filecheck.FileSystem // injected for testing
}

// Run executes the content heuristics.
func (c *ContentCheck) Run() []check.Result {
	data, err := c.FS.ReadFile(c.ConfPath)
	if err != nil {
		return []check.Result{check.Warnf("nginx.content", "nginx.conf", "not checked: %v", err)}
	}
	conf := string(data)

	var results []check.Result
	if strings.Contains(conf, "proxy_pass") {
		results = append(results, check.Warn("nginx.static", "static serving",
			"proxy_pass found, serves via proxy instead of static files").
			AddDetail("a static site build should be served directly by nginx"))
	} else {
		results = append(results, check.Pass("nginx.static", "static serving", "no proxy_pass"))
	}

	if spaFallbackRe.MatchString(conf) {
		results = append(results, check.Pass("nginx.spa", "SPA fallback", "configured"))
	} else {
		results = append(results, check.Warn("nginx.spa", "SPA fallback",
			"not configured").
			AddDetail("client-side routing needs: try_files $uri $uri/ /index.html;"))
	}
	return results
}

// HeaderCheck verifies that each recommended security response header
// appears in the config. One result per header.
type HeaderCheck struct {
	ConfPath string               // path to nginx.conf
	Headers  []string             // header names, e.g. X-Frame-Options
	FS       filecheck.FileSystem // injected for testing
}

// Run executes the security header check.
func (c *HeaderCheck) Run() []check.Result {
	data, err := c.FS.ReadFile(c.ConfPath)
	if err != nil {
		return []check.Result{check.Warnf("security.headers", "security headers", "not checked: %v", err)}
	}
	conf := string(data)

	results := make([]check.Result, 0, len(c.Headers))
	for _, h := range c.Headers {
		id := "security." + strings.ToLower(h)
		if strings.Contains(conf, h) {
			results = append(results, check.Pass(id, h, "configured"))
		} else {
			results = append(results, check.Warn(id, h, "not set"))
		}
	}
	return results
}

var tlsRe = regexp.MustCompile(`ssl_protocols[^;]*TLSv1\.[23]`)

// TLSCheck verifies that modern TLS protocol versions are configured.
type TLSCheck struct {
	ConfPath string               // path to nginx.conf
	FS       filecheck.FileSystem // injected for testing
}

// Run executes the TLS protocol check.
func (c *TLSCheck) Run() []check.Result {
	const id, name = "hardening.tls", "TLS protocols"

	data, err := c.FS.ReadFile(c.ConfPath)
	if err != nil {
		return []check.Result{check.Warnf(id, name, "not checked: %v", err)}
	}
	conf := string(data)

	switch {
	case tlsRe.MatchString(conf):
		return []check.Result{check.Pass(id, name, "TLS 1.2+ configured")}
	case strings.Contains(conf, "ssl_protocols"):
		return []check.Result{check.Warn(id, name, "ssl_protocols set without TLS 1.2 or 1.3")}
	default:
		return []check.Result{check.Warn(id, name, "ssl_protocols not set")}
	}
}

// PerfCheck verifies the performance directives: compression, HTTP/2 and
// cache expiry. One result each.
type PerfCheck struct {
	ConfPath string               // path to nginx.conf
	FS       filecheck.FileSystem // injected for testing
}

// Run executes the performance heuristics.
func (c *PerfCheck) Run() []check.Result {
	data, err := c.FS.ReadFile(c.ConfPath)
	if err != nil {
		return []check.Result{check.Warnf("perf.nginx", "nginx performance", "not checked: %v", err)}
	}
	conf := string(data)

	probe := func(id, name, directive, missing string) check.Result {
		if strings.Contains(conf, directive) {
			return check.Pass(id, name, "configured")
		}
		return check.Warn(id, name, missing)
	}

	return []check.Result{
		probe("perf.gzip", "gzip compression", "gzip on", "not enabled"),
		probe("perf.http2", "HTTP/2", "http2", "not enabled"),
		probe("perf.expires", "cache expiry", "expires", "no expires directive for static assets"),
	}
}
