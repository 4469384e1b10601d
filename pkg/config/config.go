// Package config holds the parameters of the check battery: target hostname,
// certificate locations, required files, security headers and ports.
package config

import (
	"strings"
	"time"

	"github.com/vertti/shipcheck/pkg/resourcecheck"
)

// FileName is the per-project configuration file, read from the project
// directory when present.
const FileName = ".shipcheck.yaml"

// Config parameterizes the check battery. All fields have working defaults;
// a project overrides them via .shipcheck.yaml, SHIPCHECK_* environment
// variables or flags.
type Config struct {
	// Domain is the deployment hostname, used by the DNS and certificate
	// checks. Empty disables the certbot path lookup and DNS resolution.
	Domain string `json:"domain" yaml:"domain" mapstructure:"domain"`

	// ProjectDir is the directory holding the deployment artifacts.
	ProjectDir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// SSLDir is a local fallback directory expected to contain
	// fullchain.pem and privkey.pem, relative to ProjectDir.
	SSLDir string `json:"sslDir" yaml:"sslDir" mapstructure:"sslDir"`

	// CertLiveDir is the certbot-managed base directory; certificates for
	// Domain live in CertLiveDir/<domain>.
	CertLiveDir string `json:"certLiveDir" yaml:"certLiveDir" mapstructure:"certLiveDir"`

	// Dockerfile and NginxConf name the build file and the reverse-proxy
	// config, relative to ProjectDir.
	Dockerfile string `json:"dockerfile" yaml:"dockerfile" mapstructure:"dockerfile"`
	NginxConf  string `json:"nginxConf" yaml:"nginxConf" mapstructure:"nginxConf"`

	// BundlerConf names the bundler configuration, relative to ProjectDir.
	BundlerConf string `json:"bundlerConf" yaml:"bundlerConf" mapstructure:"bundlerConf"`

	// BuildDir is the production build output directory, relative to
	// ProjectDir.
	BuildDir string `json:"buildDir" yaml:"buildDir" mapstructure:"buildDir"`

	// RequiredFiles must all exist in ProjectDir.
	RequiredFiles []string `json:"requiredFiles" yaml:"requiredFiles" mapstructure:"requiredFiles"`

	// SecurityHeaders are response header names expected in NginxConf.
	SecurityHeaders []string `json:"securityHeaders" yaml:"securityHeaders" mapstructure:"securityHeaders"`

	// Ports are local ports that must be free before deploying.
	Ports []int `json:"ports" yaml:"ports" mapstructure:"ports"`

	// Timeout bounds a single external command; BuildTimeout bounds the
	// npm and docker builds.
	Timeout      time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	BuildTimeout time.Duration `json:"buildTimeout" yaml:"buildTimeout" mapstructure:"buildTimeout"`

	// MinFreeDisk is the free disk space below which the build check
	// warns, e.g. "500M".
	MinFreeDisk string `json:"minFreeDisk" yaml:"minFreeDisk" mapstructure:"minFreeDisk"`
}

const (
	minTimeout      = time.Second
	defaultTimeout  = 30 * time.Second
	defaultBuildTTL = 5 * time.Minute
)

// Default returns the configuration for a typical Vite + nginx + Docker
// static site project.
func Default() Config {
	return Config{
		ProjectDir:  ".",
		SSLDir:      "ssl",
		CertLiveDir: "/etc/letsencrypt/live",
		Dockerfile:  "Dockerfile",
		NginxConf:   "nginx.conf",
		BundlerConf: "vite.config.js",
		BuildDir:    "dist",
		RequiredFiles: []string{
			"Dockerfile",
			"nginx.conf",
			"package.json",
			"vite.config.js",
			".dockerignore",
		},
		SecurityHeaders: []string{
			"X-Frame-Options",
			"X-Content-Type-Options",
			"X-XSS-Protection",
			"Referrer-Policy",
		},
		Ports:        []int{80, 443},
		Timeout:      defaultTimeout,
		BuildTimeout: defaultBuildTTL,
		MinFreeDisk:  "500M",
	}
}

// MinFreeDiskBytes returns the parsed MinFreeDisk threshold.
func (c Config) MinFreeDiskBytes() uint64 {
	n, err := resourcecheck.ParseSize(c.MinFreeDisk)
	if err != nil {
		return 0
	}
	return n
}

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if strings.HasPrefix(c.Domain, "http://") || strings.HasPrefix(c.Domain, "https://") {
		return ErrInvalidField{Field: "domain", Reason: "must be a bare hostname without a scheme"}
	}
	if c.ProjectDir == "" {
		return ErrInvalidField{Field: "dir", Reason: "must not be empty"}
	}
	for _, p := range c.Ports {
		if p < 1 || p > 65535 {
			return ErrInvalidField{Field: "ports", Reason: "ports must be in range 1-65535"}
		}
	}
	if c.Timeout < minTimeout {
		return ErrInvalidField{Field: "timeout", Reason: "must be at least " + minTimeout.String()}
	}
	if c.BuildTimeout < minTimeout {
		return ErrInvalidField{Field: "buildTimeout", Reason: "must be at least " + minTimeout.String()}
	}
	if c.MinFreeDisk != "" {
		if _, err := resourcecheck.ParseSize(c.MinFreeDisk); err != nil {
			return ErrInvalidField{Field: "minFreeDisk", Reason: err.Error()}
		}
	}
	return nil
}
