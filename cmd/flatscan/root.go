package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/JonMunkholm/flatfile/internal/config"
	"github.com/JonMunkholm/flatfile/internal/core"
	"github.com/JonMunkholm/flatfile/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries state shared by the subcommands of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	profile  string
	logLevel string

	cfg *config.Config
	svc *core.Service
}

// drainTimeout bounds how long execute waits for in-flight parses.
const drainTimeout = 5 * time.Second

// execute runs flatscan with args under ctx, then waits for any parse still
// holding a limiter slot.
func execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	if a.svc != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		if derr := a.svc.Limiter().WaitForDrain(drainCtx); derr != nil {
			slog.Warn("parses still running at exit", "status", a.svc.Limiter().Status())
		}
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "flatscan",
		Short: "Parse and inspect flat text files",
		Long: `flatscan reads line-oriented text files (CSV, TSV, fixed exports), drops
header, footer and blank lines, repairs escaped fields and reports rows whose
column count breaks the expected contract.

Settings are resolved in order, later sources winning:
  1. defaults
  2. the YAML profile given with --profile
  3. FLATFILE_* and LOG_* environment variables (.env is loaded if present)
  4. command-line flags`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.profile, "profile", "", "YAML profile with scan and csv settings")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	addScanFlags(pf)

	root.AddCommand(newParseCmd(a), newInspectCmd(a), newVersionCmd(a))
	return root
}

func addScanFlags(fs *pflag.FlagSet) {
	fs.Int("header", 0, "leading lines to drop, after blank-line removal")
	fs.Int("footer", 0, "trailing lines to drop, after blank-line removal")
	fs.Bool("keep-blank", false, "keep empty and whitespace-only lines")
	fs.Bool("no-trim", false, "keep leading and trailing whitespace")
	fs.StringP("delimiter", "d", ",", `column delimiter ("tab" for a tab)`)
	fs.String("marker", `"`, "escape marker wrapping fields that contain the delimiter (empty disables repair)")
	fs.IntP("expected", "n", 0, "expected column count per row (0 for none)")
	fs.StringP("encoding", "e", "", "input charset, e.g. windows-1252 (default utf-8)")
}

// setup loads configuration, applies flag overrides and builds the service.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	// Overload so that .env wins over the inherited environment.
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.LoadWithProfile(a.profile)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, cmd.Flags()); err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	svc, err := core.NewService(cfg)
	if err != nil {
		return err
	}
	a.cfg, a.svc = cfg, svc
	return nil
}

// applyFlags copies explicitly set flags onto cfg.
func applyFlags(cfg *config.Config, fs *pflag.FlagSet) error {
	var err error
	get := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			if e := apply(); e != nil {
				err = fmt.Errorf("--%s: %w", name, e)
			}
		}
	}

	get("header", func() (e error) { cfg.Scan.HeaderLines, e = fs.GetInt("header"); return })
	get("footer", func() (e error) { cfg.Scan.FooterLines, e = fs.GetInt("footer"); return })
	get("keep-blank", func() error {
		keep, e := fs.GetBool("keep-blank")
		cfg.Scan.RemoveBlankLines = !keep
		return e
	})
	get("no-trim", func() error {
		noTrim, e := fs.GetBool("no-trim")
		cfg.Scan.TrimLeading = !noTrim
		cfg.Scan.TrimTrailing = !noTrim
		return e
	})
	get("delimiter", func() (e error) { cfg.CSV.Delimiter, e = fs.GetString("delimiter"); return })
	get("marker", func() (e error) { cfg.CSV.EscapeMarker, e = fs.GetString("marker"); return })
	get("expected", func() (e error) { cfg.CSV.ExpectedColumns, e = fs.GetInt("expected"); return })
	get("encoding", func() (e error) { cfg.Scan.Encoding, e = fs.GetString("encoding"); return })

	return err
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the flatscan version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(a.stdout, "flatscan %s\n", version)
			return err
		},
	}
}
