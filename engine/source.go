// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"io"

	"github.com/gopxl/beep/v2"
)

// StreamSource exposes a streamer as an interleaved stereo audio.Source
// of a fixed number of frames, for offline rendering.
type StreamSource struct {
	s         beep.Streamer
	rate      int
	remaining int
	buf       [][2]float64
}

func NewStreamSource(s beep.Streamer, sampleRate, frames int) *StreamSource {
	return &StreamSource{
		s:         s,
		rate:      sampleRate,
		remaining: frames,
		buf:       make([][2]float64, 1024),
	}
}

func (s *StreamSource) SampleRate() int { return s.rate }
func (s *StreamSource) Channels() int   { return 2 }
func (s *StreamSource) BufSize() int    { return 2 * len(s.buf) }
func (s *StreamSource) Close() error    { return nil }

func (s *StreamSource) ReadSamples(dst []float32) (int, error) {
	if s.remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/2, s.remaining)
	written := 0

	for written < frames {
		chunk := s.buf[:min(len(s.buf), frames-written)]
		n, ok := s.s.Stream(chunk)
		for i := range n {
			dst[2*(written+i)] = float32(chunk[i][0])
			dst[2*(written+i)+1] = float32(chunk[i][1])
		}
		written += n

		if ok && n == 0 {
			return 2 * written, io.ErrNoProgress
		}
		if !ok {
			s.remaining = 0
			if err := s.s.Err(); err != nil {
				return 2 * written, err
			}
			return 2 * written, io.EOF
		}
	}

	s.remaining -= written
	if s.remaining == 0 {
		return 2 * written, io.EOF
	}

	return 2 * written, nil
}
