package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "shipcheck",
	Short: "Deployment readiness checks for static site containers",
	Long: "Shipcheck runs a battery of readiness checks against a static site\n" +
		"project (Vite build, nginx config, Dockerfile) and reports whether it\n" +
		"is ready to deploy. Warnings never fail the run; a single failed\n" +
		"check does.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAll,
}

func init() {
	for _, s := range sections() {
		rootCmd.AddCommand(&cobra.Command{
			Use:   s.name,
			Short: s.short,
			Args:  cobra.NoArgs,
			RunE:  sectionRunE(s),
		})
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// ErrNotReady is already communicated by the banner
		if !errors.Is(err, ErrNotReady) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
