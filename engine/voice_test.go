// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"slices"
	"testing"
	"time"
)

func newRampVoice(t *testing.T, frames int) *Voice {
	t.Helper()

	b, err := FromPlanar(ramp(frames), 100)
	if err != nil {
		t.Fatal(err)
	}
	return NewVoice(b)
}

func left(samples [][2]float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s[0]
	}
	return out
}

func TestVoice_StreamForward(t *testing.T) {
	t.Parallel()

	v := newRampVoice(t, 4)
	v.Start(0)

	out := make([][2]float64, 8)
	n, ok := v.Stream(out)
	if n != 4 || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}

	want := []float64{0, 0.25, 0.5, 0.75}
	if !slices.Equal(left(out[:n]), want) {
		t.Errorf("got %v, want %v", left(out[:n]), want)
	}
	if out[1][1] != -0.25 {
		t.Errorf("right channel = %f, want -0.25", out[1][1])
	}

	if v.Playing() {
		t.Error("voice should have ended")
	}
	if n, ok := v.Stream(out); n != 0 || ok {
		t.Errorf("drained voice streamed %d, %v", n, ok)
	}
}

// Both voices of a loaded sound start from the same decode; reversing one
// must leave the other in forward order.
func TestVoice_ReverseIsIndependent(t *testing.T) {
	t.Parallel()

	fwd := newRampVoice(t, 4)
	rev := NewVoice(fwd.Buffer().Clone())
	rev.SetReverse(true)

	fwd.Start(0)
	rev.Start(0)

	a := make([][2]float64, 4)
	b := make([][2]float64, 4)
	fwd.Stream(a)
	rev.Stream(b)

	if !slices.Equal(left(a), []float64{0, 0.25, 0.5, 0.75}) {
		t.Errorf("forward order changed: %v", left(a))
	}
	if !slices.Equal(left(b), []float64{0.75, 0.5, 0.25, 0}) {
		t.Errorf("reversed order wrong: %v", left(b))
	}

	// flipping back restores forward order, and is idempotent
	rev.SetReverse(false)
	rev.SetReverse(false)
	rev.Start(0)
	rev.Stream(b)
	if !slices.Equal(left(b), left(a)) {
		t.Errorf("un-reversed voice = %v", left(b))
	}
	if fwd.Reversed() || rev.Reversed() {
		t.Error("unexpected direction flags")
	}
}

func TestVoice_StartOffsetAndRate(t *testing.T) {
	t.Parallel()

	v := newRampVoice(t, 100) // one second at 100 Hz
	v.SetPlaybackRate(2)
	v.Start(0.5)

	if got := v.Position(); got != 0.5 {
		t.Fatalf("Position() = %f, want 0.5", got)
	}

	out := make([][2]float64, 10)
	n, _ := v.Stream(out)
	if n != 10 {
		t.Fatalf("n = %d", n)
	}
	if math.Abs(out[1][0]-0.52) > 1e-6 {
		t.Errorf("second frame = %f, want 0.52", out[1][0])
	}
	if math.Abs(v.Position()-0.7) > 1e-9 {
		t.Errorf("Position() = %f, want 0.7", v.Position())
	}

	v.SetPlaybackRate(0)
	if v.PlaybackRate() != 2 {
		t.Error("non-positive rate should be ignored")
	}
}

func TestVoice_StartClampsOffset(t *testing.T) {
	t.Parallel()

	v := newRampVoice(t, 100)

	v.Start(-1)
	if v.Position() != 0 {
		t.Errorf("Position() = %f, want 0", v.Position())
	}

	v.Start(5)
	if v.Position() != 1 {
		t.Errorf("Position() = %f, want 1", v.Position())
	}
	if n, _ := v.Stream(make([][2]float64, 4)); n != 0 {
		t.Errorf("voice past the end streamed %d frames", n)
	}
}

func TestVoice_EndHandler(t *testing.T) {
	t.Parallel()

	t.Run("natural end", func(t *testing.T) {
		t.Parallel()

		v := newRampVoice(t, 4)
		ended := make(chan struct{}, 2)
		v.OnEnded(func() { ended <- struct{}{} })
		v.Start(0)
		v.Stream(make([][2]float64, 8))

		select {
		case <-ended:
		case <-time.After(time.Second):
			t.Fatal("end handler did not fire")
		}
	})

	t.Run("stop", func(t *testing.T) {
		t.Parallel()

		v := newRampVoice(t, 4)
		ended := make(chan struct{}, 2)
		v.OnEnded(func() { ended <- struct{}{} })
		v.Start(0)
		v.Stop()
		v.Stop()

		select {
		case <-ended:
		case <-time.After(time.Second):
			t.Fatal("end handler did not fire")
		}
		select {
		case <-ended:
			t.Fatal("end handler fired twice")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("detached", func(t *testing.T) {
		t.Parallel()

		v := newRampVoice(t, 4)
		ended := make(chan struct{}, 1)
		v.OnEnded(func() { ended <- struct{}{} })
		v.Start(0)
		v.OnEnded(nil)
		v.Stop()

		select {
		case <-ended:
			t.Fatal("detached handler fired")
		case <-time.After(50 * time.Millisecond):
		}
	})
}
