// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/catalog"
	"github.com/ik5/soundboard/engine"
	"github.com/ik5/soundboard/formats/wav"
	"github.com/ik5/soundboard/output"
	"github.com/ik5/soundboard/playback"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// renderTail is added after the clip when the reverb is on.
const renderTail = time.Second

// offline is an output that never pulls; render drains the chain itself.
type offline struct{}

func (offline) Resume() error  { return nil }
func (offline) Suspend() error { return nil }
func (offline) Close() error   { return nil }

func renderCmd(a *app) *cobra.Command {
	var (
		src     sourceFlags
		outPath string
		rate    int
		tail    time.Duration
		params  = playback.DefaultParams()
	)

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Bounce one sound through the effects to a WAV file",
		Long: `Render a sound with the given effects, faster than real time, into a
mono 16-bit WAV file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := params.Validate(); err != nil {
				return err
			}

			_, fetcher, err := src.open(ctx, a)
			if err != nil {
				return err
			}

			sess, err := soundboard.New(soundboard.Options{
				SampleRate: a.cfg.SampleRate,
				Fetcher:    fetcher,
				Loader:     a.cfg.LoaderOptions(),
				Output: func(beep.Streamer, int) (output.Device, error) {
					return offline{}, nil
				},
				Params: params,
				Logger: a.log,
			})
			if err != nil {
				return err
			}
			defer sess.Dispose()

			if err := sess.Init(ctx); err != nil {
				return err
			}

			p := args[0]
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			sound := catalog.New(p)

			ls, err := sess.Loader().Load(ctx, sound)
			if err != nil {
				return err
			}
			if err := sess.Play(ctx, sound); err != nil {
				return err
			}

			if tail == 0 && params.Reverb {
				tail = renderTail
			}
			chainRate := sess.Chain().SampleRate()
			frames := int((ls.Duration/params.Speed + tail.Seconds()) * float64(chainRate))

			if rate <= 0 {
				rate = chainRate
			}
			pcm16, outRate, err := soundboard.ResampleToMono16(engine.NewStreamSource(sess.Chain(), chainRate, frames), rate, 4096)
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := wav.WriteWAV16(f, outRate, pcm16); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			a.log.Info("Rendered",
				zap.String("path", sound.Path),
				zap.String("out", outPath),
				zap.Int("samples", len(pcm16)),
				zap.Int("sampleRate", outRate))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d samples at %d Hz\n", outPath, len(pcm16), outRate)

			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "render.wav", "output WAV file")
	cmd.Flags().IntVar(&rate, "rate", 0, "output sample rate (default the engine rate)")
	cmd.Flags().DurationVar(&tail, "tail", 0, "extra time after the clip (default 1s with reverb)")
	cmd.Flags().Float64Var(&params.Speed, "speed", params.Speed, "playback speed")
	cmd.Flags().Float64Var(&params.Pitch, "pitch", params.Pitch, "pitch shift in semitones")
	cmd.Flags().BoolVar(&params.PitchLock, "pitch-lock", params.PitchLock, "let speed change pitch")
	cmd.Flags().BoolVar(&params.Reverb, "reverb", params.Reverb, "add reverb")
	cmd.Flags().Float64Var(&params.ReverbWet, "wet", params.ReverbWet, "reverb mix, 0 to 1")
	cmd.Flags().BoolVar(&params.Reverse, "reverse", params.Reverse, "play backwards")

	return cmd
}
