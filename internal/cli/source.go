// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"os"

	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/catalog"
	"github.com/ik5/soundboard/loader"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sourceFlags pick where sounds come from: a local directory or a
// running soundboard server.
type sourceFlags struct {
	dir    string
	server string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.dir, "dir", "", "read sounds from this directory instead of a server")
	cmd.Flags().StringVar(&s.server, "server", "", "soundboard server URL (default $SOUNDBOARD_SERVER)")
}

// open returns the catalog and a fetcher for its audio.
func (s *sourceFlags) open(ctx context.Context, a *app) ([]catalog.Sound, loader.Fetcher, error) {
	if s.dir != "" {
		fsys := os.DirFS(s.dir)
		sounds, err := catalog.Scan(fsys, soundboard.DefaultRegistry().Supports)
		if err != nil {
			return nil, nil, err
		}
		a.log.Info("Catalog scanned", zap.String("dir", s.dir), zap.Int("sounds", len(sounds)))
		return sounds, loader.DirFetcher{FS: fsys}, nil
	}

	base := s.server
	if base == "" {
		base = a.cfg.Server
	}

	sounds, err := catalog.NewClient(base, a.log).Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}
	a.log.Info("Catalog fetched", zap.String("server", base), zap.Int("sounds", len(sounds)))
	return sounds, loader.NewHTTPFetcher(base), nil
}
