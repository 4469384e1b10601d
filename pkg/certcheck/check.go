// Package certcheck verifies that TLS certificate material exists for the
// target domain, either in the certbot-managed live directory or in a local
// fallback directory.
package certcheck

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/execx"
	"github.com/vertti/shipcheck/pkg/filecheck"
)

const (
	chainFile = "fullchain.pem"
	keyFile   = "privkey.pem"
)

var errNoCerts = errors.New("certificate material missing")

// Check verifies certificate presence and, for certbot-managed material,
// extracts the expiry date via openssl.
type Check struct {
	Domain      string               // deployment hostname; empty skips the certbot path
	LiveDir     string               // certbot-managed base, e.g. /etc/letsencrypt/live
	FallbackDir string               // local directory with self-managed certs
	Timeout     time.Duration        // timeout for openssl (default: execx.DefaultTimeout)
	FS          filecheck.FileSystem // injected for testing
	Runner      execx.Runner         // injected for testing
}

// Run executes the certificate check. Exactly one result is produced.
func (c *Check) Run() []check.Result {
	const id, name = "ssl.certificate", "TLS certificates"

	if c.Domain != "" {
		dir := filepath.Join(c.LiveDir, c.Domain)
		if c.hasMaterial(dir) {
			r := check.Passf(id, name, "found in %s", dir)
			if expiry, err := c.expiry(filepath.Join(dir, chainFile)); err != nil {
				r = r.AddDetailf("expiry not checked: %v", err)
			} else {
				r = r.AddDetailf("expires: %s", expiry)
			}
			return []check.Result{r}
		}
	}

	if c.hasMaterial(c.FallbackDir) {
		return []check.Result{
			check.Passf(id, name, "found in %s", c.FallbackDir).
				AddDetail("self-managed certificates, renewal is manual"),
		}
	}

	domain := c.Domain
	if domain == "" {
		domain = "<domain>"
	}
	r := check.Fail(id, name, "no certificates found", errNoCerts)
	if c.Domain != "" {
		r = r.AddDetailf("looked in %s and %s", filepath.Join(c.LiveDir, c.Domain), c.FallbackDir)
	} else {
		r = r.AddDetailf("looked in %s", c.FallbackDir)
	}
	r = r.AddDetailf("hint: sudo certbot certonly --standalone -d %s", domain)
	return []check.Result{r}
}

// hasMaterial reports whether dir contains both the full chain and the key.
func (c *Check) hasMaterial(dir string) bool {
	if dir == "" {
		return false
	}
	for _, f := range []string{chainFile, keyFile} {
		if _, err := c.FS.Stat(filepath.Join(dir, f)); err != nil {
			return false
		}
	}
	return true
}

// expiry extracts the notAfter date of the certificate via openssl.
func (c *Check) expiry(chainPath string) (string, error) {
	if _, err := c.Runner.LookPath("openssl"); err != nil {
		return "", err
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = execx.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stdout, _, err := c.Runner.Run(ctx, "", "openssl", "x509", "-enddate", "-noout", "-in", chainPath)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.TrimSpace(stdout), "notAfter="), nil
}
