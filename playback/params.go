// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"math"

	"github.com/ik5/soundboard/utils"
)

// Params are the user-facing playback controls.
type Params struct {
	// Speed multiplies the playback rate.
	Speed float64 `json:"speed"`
	// Pitch is the user's shift in semitones.
	Pitch float64 `json:"pitch"`
	// PitchLock lets speed change pitch the way a turntable does. When
	// off, the speed's pitch change is compensated.
	PitchLock bool `json:"pitchLock"`
	Reverb    bool `json:"reverb"`
	// ReverbWet is the reverb mix in [0,1].
	ReverbWet float64 `json:"reverbWet"`
	// Reverse selects the direction of the next Play.
	Reverse bool `json:"reverse"`
}

func DefaultParams() Params {
	return Params{Speed: 1, ReverbWet: 0.5}
}

// Validate checks the speed; every other field has a usable value range.
func (p Params) Validate() error {
	return validSpeed(p.Speed)
}

func validSpeed(s float64) error {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, s)
	}
	return nil
}

// EffectivePitch is the shift the effect chain has to apply:
//
//	Pitch + (PitchLock ? 0 : -12*log2(Speed))
func EffectivePitch(p Params) float64 {
	if p.PitchLock {
		return p.Pitch
	}
	return p.Pitch - utils.SpeedToSemitones(p.Speed)
}
