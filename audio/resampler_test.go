// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/soundboard/internal/audiotest"
)

func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
		frames   int
		want     int
	}{
		{"downsample 44.1k to 16k", 44100, 16000, 1, 44100, 16000},
		{"downsample 48k to 8k stereo", 48000, 8000, 2, 48000, 8000},
		{"upsample 8k to 16k", 8000, 16000, 1, 8000, 16000},
		{"same rate", 22050, 22050, 2, 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 440)
			r := NewResampler(src, tt.dstRate)

			out := drain(t, r, 1024*tt.channels)
			if got := len(out) / tt.channels; got != tt.want {
				t.Errorf("frames = %d, want %d", got, tt.want)
			}
			if r.SampleRate() != tt.dstRate || r.Channels() != tt.channels {
				t.Errorf("format = %d Hz/%d ch", r.SampleRate(), r.Channels())
			}
		})
	}
}

func TestResampler_SameRateIsExact(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 500)
	out := drain(t, NewResampler(src, 8000), 64)

	for f := range 500 {
		want := float32(f) / 500
		if out[2*f] != want || out[2*f+1] != -want {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)", f, out[2*f], out[2*f+1], want, -want)
		}
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 8000, 0.25)
	out := drain(t, NewResampler(src, 11025), 333)

	for i, v := range out {
		if math.Abs(float64(v-0.25)) > 1e-4 {
			t.Fatalf("sample %d = %v, want 0.25", i, v)
		}
	}
}

func TestResampler_InvalidDst(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 48000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
