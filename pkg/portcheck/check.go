// Package portcheck verifies that the ports the deployment will bind are
// still free on the local host.
package portcheck

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/vertti/shipcheck/pkg/check"
)

// Dialer abstracts network dialing for testability.
type Dialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// RealDialer uses the real net package.
type RealDialer struct{}

// DialTimeout dials the network address with a timeout.
func (d *RealDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// Check verifies that each port is not already bound. A successful dial
// means something is listening, which is only a warning: the occupant may
// be the previous deployment about to be replaced.
type Check struct {
	Host    string        // host to probe (default: localhost)
	Ports   []int         // ports that must be free
	Timeout time.Duration // dial timeout (default: 2s)
	Dialer  Dialer        // injected for testing
}

// Run executes the port availability check.
func (c *Check) Run() []check.Result {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}

	results := make([]check.Result, 0, len(c.Ports))
	for _, port := range c.Ports {
		id := fmt.Sprintf("ports.%d", port)
		name := fmt.Sprintf("port %d", port)
		addr := net.JoinHostPort(host, strconv.Itoa(port))

		conn, err := c.Dialer.DialTimeout("tcp", addr, timeout)
		if err != nil {
			results = append(results, check.Pass(id, name, "available"))
			continue
		}
		_ = conn.Close()
		results = append(results, check.Warn(id, name, "already in use").
			AddDetail("stop the listening service before deploying"))
	}
	return results
}
