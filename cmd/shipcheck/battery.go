package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vertti/shipcheck/pkg/buildcheck"
	"github.com/vertti/shipcheck/pkg/certcheck"
	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/config"
	"github.com/vertti/shipcheck/pkg/dnscheck"
	"github.com/vertti/shipcheck/pkg/dockercheck"
	"github.com/vertti/shipcheck/pkg/execx"
	"github.com/vertti/shipcheck/pkg/filecheck"
	"github.com/vertti/shipcheck/pkg/nginxcheck"
	"github.com/vertti/shipcheck/pkg/output"
	"github.com/vertti/shipcheck/pkg/portcheck"
	"github.com/vertti/shipcheck/pkg/report"
	"github.com/vertti/shipcheck/pkg/resourcecheck"
)

// ErrNotReady is returned when at least one required check failed.
var ErrNotReady = errors.New("not ready for deployment")

// Production dependencies, swapped for mocks in tests.
var (
	runner   execx.Runner          = &execx.RealRunner{}
	fsys     filecheck.FileSystem  = filecheck.RealFileSystem{}
	buildFS  buildcheck.FileSystem = buildcheck.RealFileSystem{}
	disk     resourcecheck.Checker = &resourcecheck.RealChecker{}
	resolver dnscheck.Resolver     = dnscheck.NewResolver()
	dialer   portcheck.Dialer      = &portcheck.RealDialer{}
)

// section is one group of related checks in the battery.
type section struct {
	name      string // subcommand name
	title     string // printed header
	short     string // subcommand help
	expensive bool   // skipped by --no-build in the full run

	// skip reports a reason to leave the section out of the full run.
	// Skipped sections contribute nothing to the tally.
	skip func(cfg config.Config) (string, bool)

	checkers func(cfg config.Config) []check.Checker
}

func confPath(cfg config.Config) string {
	return filepath.Join(cfg.ProjectDir, cfg.NginxConf)
}

func dockerfilePath(cfg config.Config) string {
	return filepath.Join(cfg.ProjectDir, cfg.Dockerfile)
}

// fileSkip skips a section when its precondition file is absent. The files
// section already reports the missing file as a failure.
func fileSkip(path func(config.Config) string, what string) func(config.Config) (string, bool) {
	return func(cfg config.Config) (string, bool) {
		if _, err := fsys.Stat(path(cfg)); err != nil {
			return what + " not found", true
		}
		return "", false
	}
}

// sections returns the ordered check battery.
func sections() []section {
	return []section{
		{
			name:  "docker",
			title: "Docker",
			short: "Check that docker is installed and the daemon is reachable",
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&dockercheck.InstallCheck{Timeout: cfg.Timeout, Runner: runner},
				}
			},
		},
		{
			name:  "files",
			title: "Required files",
			short: "Check that all required deployment files exist",
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&filecheck.RequiredCheck{Dir: cfg.ProjectDir, Files: cfg.RequiredFiles, FS: fsys},
				}
			},
		},
		{
			name:  "ssl",
			title: "TLS certificates",
			short: "Check that certificate material exists for the domain",
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&certcheck.Check{
						Domain:      cfg.Domain,
						LiveDir:     cfg.CertLiveDir,
						FallbackDir: filepath.Join(cfg.ProjectDir, cfg.SSLDir),
						Timeout:     cfg.Timeout,
						FS:          fsys,
						Runner:      runner,
					},
				}
			},
		},
		{
			name:  "nginx",
			title: "nginx configuration",
			short: "Validate nginx.conf syntax and static-serving setup",
			skip:  fileSkip(confPath, "nginx.conf"),
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&nginxcheck.SyntaxCheck{ConfPath: confPath(cfg), Timeout: cfg.Timeout, Runner: runner},
					&nginxcheck.ContentCheck{ConfPath: confPath(cfg), FS: fsys},
				}
			},
		},
		{
			name:      "build",
			title:     "Production build",
			short:     "Run the production build and inspect its output",
			expensive: true,
			skip: fileSkip(func(cfg config.Config) string {
				return filepath.Join(cfg.ProjectDir, "package.json")
			}, "package.json"),
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&buildcheck.Check{
						Dir:         cfg.ProjectDir,
						BuildDir:    cfg.BuildDir,
						MinFreeDisk: cfg.MinFreeDiskBytes(),
						Timeout:     cfg.BuildTimeout,
						Runner:      runner,
						FS:          buildFS,
						Disk:        disk,
					},
				}
			},
		},
		{
			name:      "image",
			title:     "Container image",
			short:     "Build the production image and report its size",
			expensive: true,
			skip:      fileSkip(dockerfilePath, "Dockerfile"),
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&dockercheck.ImageCheck{
						Dir:        cfg.ProjectDir,
						Dockerfile: dockerfilePath(cfg),
						Timeout:    cfg.BuildTimeout,
						Runner:     runner,
					},
				}
			},
		},
		{
			name:  "security",
			title: "Security headers",
			short: "Check recommended response headers in nginx.conf",
			skip:  fileSkip(confPath, "nginx.conf"),
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&nginxcheck.HeaderCheck{ConfPath: confPath(cfg), Headers: cfg.SecurityHeaders, FS: fsys},
				}
			},
		},
		{
			name:  "hardening",
			title: "Hardening",
			short: "Check TLS protocol versions and the container user",
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&nginxcheck.TLSCheck{ConfPath: confPath(cfg), FS: fsys},
					&dockercheck.UserCheck{Dockerfile: dockerfilePath(cfg), FS: fsys},
				}
			},
		},
		{
			name:  "perf",
			title: "Performance",
			short: "Check compression, HTTP/2, caching and minification",
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&nginxcheck.PerfCheck{ConfPath: confPath(cfg), FS: fsys},
					&buildcheck.MinifyCheck{
						Path: filepath.Join(cfg.ProjectDir, cfg.BundlerConf),
						FS:   fsys,
					},
				}
			},
		},
		{
			name:  "dns",
			title: "DNS",
			short: "Check that the domain resolves",
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&dnscheck.Check{Domain: cfg.Domain, Resolver: resolver},
				}
			},
		},
		{
			name:  "ports",
			title: "Ports",
			short: "Check that the deployment ports are free",
			checkers: func(cfg config.Config) []check.Checker {
				return []check.Checker{
					&portcheck.Check{Ports: cfg.Ports, Dialer: dialer},
				}
			},
		},
	}
}

// runAll executes the full battery in order.
func runAll(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jsonMode := viper.GetBool("json")
	noBuild := viper.GetBool("noBuild")

	p := output.NewPrinter(cmd.OutOrStdout())
	var all []check.Result
	var tally check.Tally

	for _, s := range sections() {
		if s.expensive && noBuild {
			continue
		}
		if s.skip != nil {
			if reason, skip := s.skip(cfg); skip {
				if !jsonMode {
					p.Section(s.title)
					p.Skip(reason)
				}
				continue
			}
		}
		if !jsonMode {
			p.Section(s.title)
		}
		for _, ck := range s.checkers(cfg) {
			for _, r := range run(ck) {
				tally.Add(r)
				all = append(all, r)
				if !jsonMode {
					p.Result(r)
				}
			}
		}
	}
	return finish(cmd, p, all, tally, jsonMode)
}

// sectionRunE runs a single section as its own subcommand. Skip rules do
// not apply here: when asked for one section explicitly, its checks report
// their own missing preconditions.
func sectionRunE(s section) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		jsonMode := viper.GetBool("json")

		p := output.NewPrinter(cmd.OutOrStdout())
		if !jsonMode {
			p.Section(s.title)
		}
		var all []check.Result
		var tally check.Tally
		for _, ck := range s.checkers(cfg) {
			for _, r := range run(ck) {
				tally.Add(r)
				all = append(all, r)
				if !jsonMode {
					p.Result(r)
				}
			}
		}
		return finish(cmd, p, all, tally, jsonMode)
	}
}

// run executes a checker, downgrading an unexpected panic to a failed
// result so one broken check cannot abort the rest of the battery.
func run(c check.Checker) (results []check.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			results = []check.Result{
				check.Failf("internal", "internal error", "check panicked: %v", rec),
			}
		}
	}()
	return c.Run()
}

func finish(cmd *cobra.Command, p *output.Printer, all []check.Result, tally check.Tally, jsonMode bool) error {
	if jsonMode {
		if err := report.New(all).Write(cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		p.Summary(tally)
	}
	if !tally.Ready() {
		return ErrNotReady
	}
	return nil
}
