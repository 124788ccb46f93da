// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"math"
	"testing"
)

func TestEffectivePitch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Params
		want   float64
	}{
		{"neutral", Params{Speed: 1}, 0},
		{"double speed compensated", Params{Speed: 2}, -12},
		{"half speed compensated", Params{Speed: 0.5}, 12},
		{"user pitch on top", Params{Speed: 2, Pitch: 5}, -7},
		{"locked ignores speed", Params{Speed: 2, Pitch: 5, PitchLock: true}, 5},
		{"locked at half speed", Params{Speed: 0.5, Pitch: -3, PitchLock: true}, -3},
		{"odd speed", Params{Speed: 1.5, Pitch: 1}, 1 - 12*math.Log2(1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EffectivePitch(tt.params); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EffectivePitch() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestEffectivePitch_AnySpeed(t *testing.T) {
	t.Parallel()

	for speed := 0.25; speed <= 4; speed += 0.05 {
		for _, pitch := range []float64{-12, -1.5, 0, 7} {
			free := EffectivePitch(Params{Speed: speed, Pitch: pitch})
			if math.Abs(free-(pitch-12*math.Log2(speed))) > 1e-9 {
				t.Fatalf("speed %f pitch %f: got %f", speed, pitch, free)
			}

			locked := EffectivePitch(Params{Speed: speed, Pitch: pitch, PitchLock: true})
			if locked != pitch {
				t.Fatalf("locked speed %f pitch %f: got %f", speed, pitch, locked)
			}
		}
	}
}

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	for _, speed := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := (Params{Speed: speed}).Validate(); !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("speed %v: Validate() = %v", speed, err)
		}
	}
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("DefaultParams().Validate() = %v", err)
	}
}
