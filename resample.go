// SPDX-License-Identifier: EPL-2.0

package soundboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/utils"
)

// ResampleToMono16 drains src through a resampler and a mono downmix and
// returns the result as 16-bit PCM at targetRate. bufferSize is the read
// size used for each pull.
//
// Used by the render command to bounce a clip through the effect chain
// into a WAV file:
//
//	pcm16, rate, err := soundboard.ResampleToMono16(src, 44100, 4096)
//	if err != nil {
//	    return err
//	}
//	err = wav.WriteWAV16(out, rate, pcm16)
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	mono := audio.NewMonoMixer(audio.Convert(src, targetRate))

	pcm16 := make([]int16, 0, targetRate)
	buf := make([]float32, max(bufferSize, 1))

	for {
		n, err := mono.ReadSamples(buf)
		for _, x := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(x))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("resample to mono16: %w", err)
		}
	}

	return pcm16, targetRate, nil
}
