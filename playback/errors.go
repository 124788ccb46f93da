// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrInvalidSound rejects play requests for folders or entries without a path
	ErrInvalidSound = errors.New("playback: invalid sound")

	// ErrInvalidSpeed rejects speeds that are not finite and positive
	ErrInvalidSpeed = errors.New("playback: speed must be positive")
)
