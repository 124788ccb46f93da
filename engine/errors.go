// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrRaggedChannels indicates planar data whose channels differ in length
	ErrRaggedChannels = errors.New("engine: channels differ in length")

	// ErrInvalidSampleRate indicates a non-positive sample rate
	ErrInvalidSampleRate = errors.New("engine: invalid sample rate")
)
