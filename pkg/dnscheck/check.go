// Package dnscheck verifies that the deployment hostname resolves. The
// lookup uses the Go-native resolver, so no external DNS tooling is needed;
// an unresolved name is a warning, never a failure, because DNS may be
// configured after the first deploy.
package dnscheck

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/vertti/shipcheck/pkg/check"
)

// Resolver abstracts hostname resolution for testability.
// *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// NewResolver returns the production resolver.
func NewResolver() Resolver {
	return &net.Resolver{PreferGo: true}
}

// Check verifies that the target domain resolves to an address.
type Check struct {
	Domain   string        // deployment hostname
	Timeout  time.Duration // lookup timeout (default: 5s)
	Resolver Resolver      // injected for testing
}

// Run executes the DNS check.
func (c *Check) Run() []check.Result {
	const id, name = "dns.resolve", "DNS"

	if c.Domain == "" {
		return []check.Result{check.Warn(id, name, "no domain configured, resolution not checked")}
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	addrs, err := c.Resolver.LookupHost(ctx, c.Domain)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return []check.Result{check.Warnf(id, name, "lookup timed out after %s", timeout)}
		}
		return []check.Result{check.Warnf(id, name, "%s does not resolve: %v", c.Domain, err)}
	}

	r := check.Passf(id, name, "%s resolves to %s", c.Domain, addrs[0])
	if len(addrs) > 1 {
		r = r.AddDetailf("all addresses: %s", strings.Join(addrs, ", "))
	}
	return []check.Result{r}
}
