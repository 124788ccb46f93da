// SPDX-License-Identifier: EPL-2.0

//go:build !((linux && cgo) || windows || darwin)

package output

import (
	"time"

	"github.com/gopxl/beep/v2"
	"go.uber.org/zap"
)

const DefaultBufferSize = 50 * time.Millisecond

// Oto is not available on this platform.
type Oto struct{}

func NewOto(beep.Streamer, int, time.Duration, *zap.Logger) (*Oto, error) {
	return nil, ErrUnavailable
}

func (*Oto) Resume() error  { return ErrUnavailable }
func (*Oto) Suspend() error { return ErrUnavailable }
func (*Oto) Close() error   { return nil }
