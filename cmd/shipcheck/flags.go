package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/vertti/shipcheck/pkg/config"
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("domain", "", "deployment hostname for the DNS and certificate checks")
	pf.String("dir", ".", "project directory to check")
	pf.String("ssl-dir", "ssl", "local fallback directory with fullchain.pem and privkey.pem")
	pf.Duration("timeout", 30*time.Second, "timeout for a single external command")
	pf.Duration("build-timeout", 5*time.Minute, "timeout for the npm and docker builds")
	pf.Bool("json", false, "print a machine-readable report instead of text")
	pf.Bool("no-build", false, "skip the npm and docker image build sections")

	binds := map[string]string{
		"domain":       "domain",
		"dir":          "dir",
		"sslDir":       "ssl-dir",
		"timeout":      "timeout",
		"buildTimeout": "build-timeout",
		"json":         "json",
		"noBuild":      "no-build",
	}
	for key, flag := range binds {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("SHIPCHECK")
	viper.AutomaticEnv()

	defaults := config.Default()
	viper.SetDefault("certLiveDir", defaults.CertLiveDir)
	viper.SetDefault("dockerfile", defaults.Dockerfile)
	viper.SetDefault("nginxConf", defaults.NginxConf)
	viper.SetDefault("bundlerConf", defaults.BundlerConf)
	viper.SetDefault("buildDir", defaults.BuildDir)
	viper.SetDefault("requiredFiles", defaults.RequiredFiles)
	viper.SetDefault("securityHeaders", defaults.SecurityHeaders)
	viper.SetDefault("ports", defaults.Ports)
	viper.SetDefault("minFreeDisk", defaults.MinFreeDisk)
}

// loadConfig assembles the effective configuration: defaults, overlaid by
// the project's .shipcheck.yaml, then SHIPCHECK_* environment variables and
// flags.
func loadConfig() (config.Config, error) {
	cfg := config.Default()

	dir := viper.GetString("dir")
	viper.SetConfigFile(filepath.Join(dir, config.FileName))
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
