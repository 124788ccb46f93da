// SPDX-License-Identifier: EPL-2.0

// Package cli implements the soundboard command.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/soundboard/internal/config"
	"github.com/ik5/soundboard/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	envFile  string
	logLevel string
	logFile  string

	cfg *config.Config
	log *zap.Logger
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	a.cfg = config.Load(files...)

	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	if a.logFile != "" {
		a.cfg.LogFile = a.logFile
	}

	log, err := logger.New(logger.Config{
		Level:      a.cfg.LogLevel,
		OutputPath: a.cfg.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Console:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// Root builds the command tree.
func Root() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "soundboard",
		Short: "Serve and play a board of sound clips",
		Long: `Serve a directory of sound clips over HTTP and play them with live
speed, pitch, reverb and instant reverse.

Settings come from the environment (SOUNDBOARD_*) or a .env file;
flags override both.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env", "", "load settings from this .env file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write logs to this rotated file")

	cmd.AddCommand(serveCmd(a))
	cmd.AddCommand(listCmd(a))
	cmd.AddCommand(playCmd(a))
	cmd.AddCommand(renderCmd(a))

	return cmd
}

// Execute runs the root command until it ends or the process is
// interrupted.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Root().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
