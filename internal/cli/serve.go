// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"os"

	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func serveCmd(a *app) *cobra.Command {
	var (
		dir   string
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a sound directory over HTTP",
		Long: `Serve the catalog at /api/sounds and the clips under /api/audio/.
The catalog is rescanned when files change unless --watch=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = a.cfg.Dir
			}
			if addr == "" {
				addr = a.cfg.Addr
			}

			srv := server.New(os.DirFS(dir), soundboard.DefaultRegistry().Supports, a.log)

			g, ctx := errgroup.WithContext(cmd.Context())
			if watch {
				g.Go(func() error {
					if err := srv.Watch(ctx, dir); err != nil {
						a.log.Warn("Directory watch disabled", zap.Error(err))
					}
					return nil
				})
			}
			g.Go(func() error {
				return server.ListenAndServe(ctx, addr, srv.Handler(), a.log)
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "sound directory (default $SOUNDBOARD_DIR)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $SOUNDBOARD_ADDR)")
	cmd.Flags().BoolVar(&watch, "watch", true, "rescan when files change")

	return cmd
}
