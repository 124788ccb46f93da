// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"slices"

	"github.com/ik5/soundboard/audio"
)

// Buffer holds decoded PCM, one slice per channel.
type Buffer struct {
	rate int
	data [][]float32
}

// NewBuffer allocates a silent buffer.
func NewBuffer(channels, frames, sampleRate int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{rate: sampleRate, data: data}
}

// FromPlanar wraps per-channel samples without copying them.
func FromPlanar(planar [][]float32, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(planar) == 0 {
		return nil, audio.ErrNoChannels
	}
	for _, ch := range planar[1:] {
		if len(ch) != len(planar[0]) {
			return nil, ErrRaggedChannels
		}
	}

	return &Buffer{rate: sampleRate, data: planar}, nil
}

func (b *Buffer) Channels() int   { return len(b.data) }
func (b *Buffer) SampleRate() int { return b.rate }

// Len is the number of frames.
func (b *Buffer) Len() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Len()) / float64(b.rate)
}

// Channel returns the samples of channel c. The slice aliases the buffer.
func (b *Buffer) Channel(c int) []float32 { return b.data[c] }

// Clone returns a deep copy sharing no sample storage with b.
func (b *Buffer) Clone() *Buffer {
	data := make([][]float32, len(b.data))
	for c, ch := range b.data {
		data[c] = slices.Clone(ch)
	}

	return &Buffer{rate: b.rate, data: data}
}

// Reverse reorders every channel back to front in place.
func (b *Buffer) Reverse() {
	for _, ch := range b.data {
		slices.Reverse(ch)
	}
}
