// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/control"
	"github.com/ik5/soundboard/output"
	"github.com/ik5/soundboard/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func playCmd(a *app) *cobra.Command {
	var (
		src      sourceFlags
		ctrlAddr string
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a board interactively",
		Long: `Load every sound on the board and read commands from stdin.
Type "help" for the command list. With --control the same controls are
served over HTTP for a UI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sounds, fetcher, err := src.open(ctx, a)
			if err != nil {
				return err
			}

			out := soundboard.DeviceOutput(output.DefaultBufferSize, a.log)
			if headless {
				out = soundboard.HeadlessOutput(output.WithHeadlessLogger(a.log))
			}

			sess, err := soundboard.New(soundboard.Options{
				SampleRate: a.cfg.SampleRate,
				Fetcher:    fetcher,
				Loader:     a.cfg.LoaderOptions(),
				Output:     out,
				Logger:     a.log,
			})
			if err != nil {
				return err
			}
			defer sess.Dispose()

			if err := sess.Init(ctx); err != nil {
				if !errors.Is(err, output.ErrUnavailable) {
					return err
				}
				return fmt.Errorf("%w (try --headless)", err)
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			if ctrlAddr != "" {
				api := control.New(sess, a.log)
				go func() {
					if err := server.ListenAndServe(ctx, ctrlAddr, api.Handler(), a.log); err != nil {
						a.log.Error("Control server failed", zap.Error(err))
					}
				}()
			}

			res := sess.Preload(ctx, sounds)
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d of %d sounds (%d failed)\n", res.Loaded, res.Total, res.Failed)

			return runREPL(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), sess, sounds)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&ctrlAddr, "control", "", "serve the control API on this address")
	cmd.Flags().BoolVar(&headless, "headless", false, "run without a sound device")

	return cmd
}
