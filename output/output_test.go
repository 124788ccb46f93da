// SPDX-License-Identifier: EPL-2.0

package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
)

func decode(t *testing.T, b []byte) []float32 {
	t.Helper()

	if len(b)%4 != 0 {
		t.Fatalf("encoded length %d is not a multiple of 4", len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// limited yields value for n frames, then ends.
func limited(value float64, n int) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n == 0 {
			return 0, false
		}
		k := min(n, len(samples))
		for i := range k {
			samples[i] = [2]float64{value, -value}
		}
		n -= k
		return k, true
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		frames [][2]float64
		dst    int
		want   []float32
	}{
		{"plain", [][2]float64{{0.5, -0.25}, {0, 1}}, 16, []float32{0.5, -0.25, 0, 1}},
		{"clamped", [][2]float64{{2, -3}}, 8, []float32{1, -1}},
		{"short destination", [][2]float64{{0.1, 0.2}, {0.3, 0.4}}, 12, []float32{0.1, 0.2}},
		{"no frames", nil, 8, []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]byte, tt.dst)
			n := Encode(dst, tt.frames)
			if n != len(tt.want)*4 {
				t.Fatalf("Encode() = %d bytes, want %d", n, len(tt.want)*4)
			}

			got := decode(t, dst[:n])
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("sample %d = %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStreamReader_PadsWithSilence(t *testing.T) {
	t.Parallel()

	r := newStreamReader(limited(0.5, 3))

	p := make([]byte, 5*FrameSize)
	n, err := r.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read() = %d, %v", n, err)
	}

	want := []float32{0.5, -0.5, 0.5, -0.5, 0.5, -0.5, 0, 0, 0, 0}
	got := decode(t, p)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %f, want %f", i, got[i], want[i])
		}
	}

	// the streamer is drained; the device keeps getting silence
	n, err = r.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("second Read() = %d, %v", n, err)
	}
	for i, v := range decode(t, p) {
		if v != 0 {
			t.Fatalf("sample %d = %f after the end, want silence", i, v)
		}
	}
}

func TestStreamReader_PartialFrame(t *testing.T) {
	t.Parallel()

	r := newStreamReader(limited(1, 10))
	p := []byte{1, 2, 3}
	if n, err := r.Read(p); n != 3 || err != nil || !bytes.Equal(p, []byte{0, 0, 0}) {
		t.Errorf("Read() = %d, %v, %v", n, err, p)
	}
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Len()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within 2s")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHeadless_Pulls(t *testing.T) {
	t.Parallel()

	sink := &syncBuffer{}
	h := NewHeadless(limited(0.25, 1<<30), 1000, WithPeriod(time.Millisecond), WithSink(sink))
	defer h.Close()

	waitFor(t, func() bool { return h.Frames() >= 5 })
	waitFor(t, func() bool { return sink.Len() >= 5*FrameSize })

	if err := h.Suspend(); err != nil {
		t.Fatal(err)
	}
	if !h.Suspended() {
		t.Error("Suspended() = false after Suspend()")
	}

	// let an in-flight pull finish before sampling
	time.Sleep(5 * time.Millisecond)
	frozen := h.Frames()
	time.Sleep(10 * time.Millisecond)
	if got := h.Frames(); got != frozen {
		t.Errorf("pulled %d frames while suspended", got-frozen)
	}

	if err := h.Resume(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return h.Frames() > frozen })
}

func TestHeadless_Close(t *testing.T) {
	t.Parallel()

	h := NewHeadless(limited(0, 0), 1000, WithPeriod(time.Millisecond))

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := h.Resume(); !errors.Is(err, ErrClosed) {
		t.Errorf("Resume() after Close() = %v, want ErrClosed", err)
	}
}
