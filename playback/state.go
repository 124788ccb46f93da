// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"time"

	"github.com/ik5/soundboard/utils"
)

// Status is the controller's state machine position.
type Status int

const (
	Idle Status = iota
	PlayingForward
	PlayingReverse
)

func (s Status) String() string {
	switch s {
	case PlayingForward:
		return "playing-forward"
	case PlayingReverse:
		return "playing-reverse"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// State describes the segment that is sounding now. It is replaced as a
// whole on every start, stop, reversal and speed change.
type State struct {
	Path string
	// StartTime is the wall clock time the segment began.
	StartTime time.Time
	// StartPosition is the logical position, in seconds from the start of
	// the forward audio, at StartTime.
	StartPosition float64
	Reversed      bool
	Speed         float64
	// Duration of the sound in seconds.
	Duration float64
}

// PositionAt is the logical position at now, clamped to the sound.
func (s State) PositionAt(now time.Time) float64 {
	moved := now.Sub(s.StartTime).Seconds() * s.Speed
	if s.Reversed {
		moved = -moved
	}
	return utils.Clamp(s.StartPosition+moved, 0, s.Duration)
}

func (s State) Status() Status {
	if s.Reversed {
		return PlayingReverse
	}
	return PlayingForward
}
