// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/gopxl/beep/v2"
)

// FrameSize is the byte size of one float32LE stereo frame.
const FrameSize = 8

// Device is a running output. Suspend and Resume pause and continue the
// pull without tearing the device down.
type Device interface {
	Resume() error
	Suspend() error
	Close() error
}

// Encode writes frames as interleaved float32LE into dst and returns the
// number of bytes written. Samples are clamped to [-1,1]; dst is filled
// up to its last whole frame.
func Encode(dst []byte, frames [][2]float64) int {
	n := min(len(frames), len(dst)/FrameSize)
	for i := range n {
		off := i * FrameSize
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(float32(clamp(frames[i][0]))))
		binary.LittleEndian.PutUint32(dst[off+4:], math.Float32bits(float32(clamp(frames[i][1]))))
	}
	return n * FrameSize
}

func clamp(v float64) float64 {
	return max(-1, min(v, 1))
}

// streamReader adapts a streamer to io.Reader. Frames the streamer does
// not produce come out as silence, so the device never starves.
type streamReader struct {
	mu  sync.Mutex
	s   beep.Streamer
	buf [][2]float64
}

func newStreamReader(s beep.Streamer) *streamReader {
	return &streamReader{s: s}
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / FrameSize
	if frames == 0 {
		clear(p)
		return len(p), nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	filled := 0
	for filled < frames {
		n, ok := r.s.Stream(buf[filled:])
		if !ok || n == 0 {
			break
		}
		filled += n
	}
	clear(buf[filled:])

	return Encode(p, buf), nil
}

var (
	_ Device = (*Oto)(nil)
	_ Device = (*Headless)(nil)
)
