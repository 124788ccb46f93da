// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"slices"

	"github.com/gopxl/beep/v2"
)

// Bus sums the voices connected to it. Voices are dropped once they stop.
// A Bus never drains: with nothing connected it streams silence.
// It is not safe for concurrent use; Chain serializes access.
type Bus struct {
	voices []beep.Streamer
	tmp    [][2]float64
}

// Add connects s unless it is already connected.
func (b *Bus) Add(s beep.Streamer) {
	if slices.Contains(b.voices, s) {
		return
	}
	b.voices = append(b.voices, s)
}

// Len is the number of connected streamers.
func (b *Bus) Len() int { return len(b.voices) }

func (b *Bus) Stream(samples [][2]float64) (n int, ok bool) {
	clear(samples)

	if cap(b.tmp) < len(samples) {
		b.tmp = make([][2]float64, len(samples))
	}
	tmp := b.tmp[:len(samples)]

	b.voices = slices.DeleteFunc(b.voices, func(s beep.Streamer) bool {
		n, ok := s.Stream(tmp)
		for i := range n {
			samples[i][0] += tmp[i][0]
			samples[i][1] += tmp[i][1]
		}
		return !ok
	})

	return len(samples), true
}

func (b *Bus) Err() error { return nil }
