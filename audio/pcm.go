// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src and returns its samples split per channel.
// The source is not closed.
func ReadAll(src Source) ([][]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	size := max(src.BufSize(), 4096)
	size -= size % channels
	buf := make([]float32, size)

	planar := make([][]float32, channels)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		frames := n / channels
		for f := range frames {
			for c := range channels {
				planar[c] = append(planar[c], buf[f*channels+c])
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}
		empty++
		if empty >= maxEmptyReads {
			return nil, io.ErrNoProgress
		}
	}

	if len(planar[0]) == 0 {
		return nil, ErrEmptySource
	}

	return planar, nil
}

// Convert resamples src to rate when the rates differ.
func Convert(src Source, rate int) Source {
	if src.SampleRate() == rate {
		return src
	}
	return NewResampler(src, rate)
}
