// Package cli is the arplace command line: flags, startup order and the choice between the
// preview window and a headless script run.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"arplace/internal/app"
	"arplace/internal/commands"
	"arplace/internal/config"
	"arplace/internal/env"
	"arplace/internal/logger"
	"arplace/internal/script"
)

// ErrCommandsFailed is returned when a script ran to the end but some of its commands failed.
var ErrCommandsFailed = errors.New("cli: script commands failed")

// PreviewFunc opens the interactive window and returns when it closes.
type PreviewFunc func(ctx context.Context, a *app.App, reg *commands.Registry)

type options struct {
	envPath     string
	configPath  string
	scriptPath  string
	stopOnError bool
}

// NewRootCmd returns the arplace root command. preview runs when no script is given.
func NewRootCmd(preview PreviewFunc) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "arplace",
		Short: "Place furniture on a detected floor",
		Long: `arplace places catalog furniture on a detected floor plane. Without --script it opens
a preview window; with --script it runs commands headless and prints what they log.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, preview)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&o.envPath, "env", ".env", "environment file loaded before reading prefs")
	fl.StringVarP(&o.configPath, "config", "c", "", "prefs file (default $"+config.PathEnv+" or "+config.DefaultPath+")")
	fl.StringVarP(&o.scriptPath, "script", "s", "", "run commands from a file without opening a window (- for stdin)")
	fl.BoolVar(&o.stopOnError, "stop-on-error", false, "with --script, stop at the first failing command")
	return cmd
}

func run(cmd *cobra.Command, o options, preview PreviewFunc) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := env.Load(o.envPath); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "env:", err)
	}
	path := o.configPath
	if path == "" {
		path = config.Path()
	}
	prefs, cfgErr := config.Load(path)
	log := logger.New(prefs.LogPath)
	if cfgErr != nil {
		log.Logf("Using default prefs: %v", cfgErr)
	}

	a, err := app.New(app.Options{Prefs: prefs, PrefsPath: path, Log: log})
	if err != nil {
		return err
	}
	defer a.Close()

	reg := commands.NewRegistry()
	a.RegisterCommands(ctx, reg)

	if o.scriptPath == "" {
		preview(ctx, a, reg)
		return nil
	}

	var in io.Reader = cmd.InOrStdin()
	if o.scriptPath != "-" {
		f, err := os.Open(o.scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	rn := &script.Runner{App: a, Registry: reg, Out: cmd.OutOrStdout(), StopOnError: o.stopOnError}
	res, err := rn.Run(ctx, in)
	if err != nil {
		return err
	}
	if res.Errors > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCommandsFailed, res.Errors, res.Lines)
	}
	return nil
}
