// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/soundboard/internal/audiotest"
)

func TestReadAll_Planar(t *testing.T) {
	t.Parallel()

	planar, err := ReadAll(audiotest.NewRampSource(8000, 2, 10000))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(planar) != 2 {
		t.Fatalf("channels = %d, want 2", len(planar))
	}
	for c := range planar {
		if len(planar[c]) != 10000 {
			t.Fatalf("channel %d frames = %d, want 10000", c, len(planar[c]))
		}
	}
	for f := range 10000 {
		want := float32(f) / 10000
		if planar[0][f] != want || planar[1][f] != -want {
			t.Fatalf("frame %d = (%v, %v)", f, planar[0][f], planar[1][f])
		}
	}
}

func TestReadAll_Errors(t *testing.T) {
	t.Parallel()

	if _, err := ReadAll(audiotest.NewSilentSource(8000, 1, 0)); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty source error = %v, want ErrEmptySource", err)
	}
	if _, err := ReadAll(audiotest.NewSilentSource(8000, 0, 10)); !errors.Is(err, ErrNoChannels) {
		t.Errorf("no channels error = %v, want ErrNoChannels", err)
	}
	if _, err := ReadAll(stuckSource{}); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("stuck source error = %v, want io.ErrNoProgress", err)
	}
}

type stuckSource struct{}

func (stuckSource) SampleRate() int                    { return 8000 }
func (stuckSource) Channels() int                      { return 1 }
func (stuckSource) BufSize() int                       { return 16 }
func (stuckSource) Close() error                       { return nil }
func (stuckSource) ReadSamples([]float32) (int, error) { return 0, nil }

func TestConvert(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if Convert(src, 8000) != Source(src) {
		t.Error("Convert() wrapped a source already at the target rate")
	}
	if got := Convert(src, 16000).SampleRate(); got != 16000 {
		t.Errorf("Convert().SampleRate() = %d, want 16000", got)
	}
}
