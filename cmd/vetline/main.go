// Command vetline exposes the library's detectors as a batch, flag-driven
// CLI (spec §6): sql-scan, shell-scan, js-scan, idor, route, path-scan.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/vetline/internal/auditlog"
	"github.com/runger/vetline/internal/config"
	"github.com/runger/vetline/internal/scanner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vetline:", err)
		os.Exit(1)
	}
}

var (
	flagConfigPath string
	flagAuditPath  string
	flagAuditOn    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vetline",
		Short:         "In-process security-analysis scans: SQL/shell/JS injection, IDOR, route templating",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to config.yaml (default: built-in)")
	root.PersistentFlags().StringVar(&flagAuditPath, "audit-db", "", "path to audit sqlite database (default: XDG config dir)")
	root.PersistentFlags().BoolVar(&flagAuditOn, "audit", false, "record every scan to the audit log")

	root.AddCommand(
		newSQLScanCmd(),
		newShellScanCmd(),
		newJSScanCmd(),
		newIDORCmd(),
		newRouteCmd(),
		newPathScanCmd(),
	)
	return root
}

// buildScanner assembles a scanner.Scanner from the persistent flags,
// loading config.yaml if --config was given and opening the audit log
// if --audit was requested. Caller must close the returned closer.
func buildScanner() (*scanner.Scanner, func(), error) {
	var cfg *config.Config
	if flagConfigPath != "" {
		loaded, err := config.Load(flagConfigPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	noop := func() {}
	if !flagAuditOn {
		return scanner.New(cfg, nil, nil), noop, nil
	}

	dbPath := flagAuditPath
	if dbPath == "" {
		p, err := config.DefaultAuditDBPath()
		if err != nil {
			return nil, nil, err
		}
		dir, err := config.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		if err := config.EnsureDir(dir); err != nil {
			return nil, nil, err
		}
		dbPath = p
	}
	audit, err := auditlog.Open(dbPath, nil)
	if err != nil {
		return nil, nil, err
	}
	return scanner.New(cfg, audit, nil), func() { audit.Close() }, nil
}
