package dnscheck

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/testutil"
)

type mockResolver struct {
	addrs []string
	err   error
	delay time.Duration
}

func (m *mockResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.addrs, m.err
}

func TestDNSCheckResolves(t *testing.T) {
	c := &Check{
		Domain:   "example.com",
		Resolver: &mockResolver{addrs: []string{"93.184.216.34"}},
	}
	results := c.Run()

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Status != check.StatusPass {
		t.Errorf("Status = %q, want PASS", r.Status)
	}
	if r.Message != "example.com resolves to 93.184.216.34" {
		t.Errorf("Message = %q", r.Message)
	}
	if len(r.Details) != 0 {
		t.Errorf("single address should add no details, got %v", r.Details)
	}
}

func TestDNSCheckMultipleAddresses(t *testing.T) {
	c := &Check{
		Domain:   "example.com",
		Resolver: &mockResolver{addrs: []string{"1.2.3.4", "2606:2800::1"}},
	}
	results := c.Run()

	if !testutil.ContainsDetail(results[0].Details, "2606:2800::1") {
		t.Errorf("missing all-addresses detail, got %v", results[0].Details)
	}
}

func TestDNSCheckUnresolvedWarns(t *testing.T) {
	c := &Check{
		Domain:   "nope.invalid",
		Resolver: &mockResolver{err: errors.New("no such host")},
	}
	results := c.Run()

	r := results[0]
	if r.Status != check.StatusWarn {
		t.Errorf("Status = %q, want WARN", r.Status)
	}
	if !strings.Contains(r.Message, "does not resolve") {
		t.Errorf("Message = %q", r.Message)
	}
}

func TestDNSCheckTimeoutWarns(t *testing.T) {
	c := &Check{
		Domain:   "slow.example.com",
		Timeout:  10 * time.Millisecond,
		Resolver: &mockResolver{delay: time.Second},
	}
	results := c.Run()

	r := results[0]
	if r.Status != check.StatusWarn {
		t.Errorf("Status = %q, want WARN", r.Status)
	}
	if !strings.Contains(r.Message, "timed out") {
		t.Errorf("Message = %q", r.Message)
	}
}

func TestDNSCheckNoDomainWarns(t *testing.T) {
	c := &Check{Resolver: &mockResolver{addrs: []string{"1.2.3.4"}}}
	results := c.Run()

	if results[0].Status != check.StatusWarn {
		t.Errorf("Status = %q, want WARN without a domain", results[0].Status)
	}
}
