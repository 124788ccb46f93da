// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/internal/audiotest"
)

// Example_readAll converts a clip to the engine rate and splits it per channel.
func Example_readAll() {
	src := audiotest.NewSineSource(22050, 2, 22050, 440) // 1 second stereo

	planar, err := audio.ReadAll(audio.Convert(src, 44100))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("channels: %d\n", len(planar))
	fmt.Printf("frames: %d\n", len(planar[0]))
	// Output:
	// channels: 2
	// frames: 44100
}
