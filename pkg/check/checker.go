package check

// Checker is implemented by all check types.
// Each check validates one aspect of deployment readiness and returns a
// result per property inspected. A check that is skipped because its
// precondition is absent returns no result for it rather than a Pass.
//
// Implementations:
//   - dockercheck.InstallCheck: docker CLI and daemon availability
//   - dockercheck.ImageCheck: throwaway production image build
//   - filecheck.RequiredCheck: presence of required deployment files
//   - certcheck.Check: TLS certificate material and expiry
//   - nginxcheck.SyntaxCheck, ContentCheck, HeaderCheck, TLSCheck, PerfCheck
//   - buildcheck.Check, MinifyCheck: production build and bundler settings
//   - dnscheck.Check: hostname resolution
//   - portcheck.Check: local port availability
type Checker interface {
	Run() []Result
}
