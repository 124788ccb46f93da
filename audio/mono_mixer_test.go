// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"testing"

	"github.com/ik5/soundboard/internal/audiotest"
)

func TestMonoMixer_AveragesChannels(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 4, 10, func(_ int, c int) float32 {
		return float32(c) * 0.1
	})
	m := NewMonoMixer(src)

	out := drain(t, m, 8)
	if len(out) != 10 {
		t.Fatalf("len = %d, want 10", len(out))
	}
	for i, v := range out {
		if diff := v - 0.15; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("sample %d = %v, want 0.15", i, v)
		}
	}
	if m.Channels() != 1 || m.SampleRate() != 8000 {
		t.Errorf("format = %d Hz/%d ch", m.SampleRate(), m.Channels())
	}
}

func TestMonoMixer_RampCancels(t *testing.T) {
	t.Parallel()

	// channel 1 is the negation of channel 0
	out := drain(t, NewMonoMixer(audiotest.NewRampSource(8000, 2, 100)), 32)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestMonoMixer_PassThrough(t *testing.T) {
	t.Parallel()

	out := drain(t, NewMonoMixer(audiotest.NewRampSource(8000, 1, 50)), 16)
	for i, v := range out {
		if want := float32(i) / 50; v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	n, err := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10)).ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}
