// SPDX-License-Identifier: EPL-2.0

//go:build (linux && cgo) || windows || darwin

package output

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"
	"go.uber.org/zap"
)

// DefaultBufferSize keeps latency low enough for live triggering.
const DefaultBufferSize = 50 * time.Millisecond

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

// Oto plays a streamer on the system sound device.
type Oto struct {
	mu     sync.Mutex
	player *oto.Player
	log    *zap.Logger
	closed bool
}

// NewOto opens the device at sampleRate and starts pulling s. The
// process can hold only one device context; later calls must use the
// same rate.
func NewOto(s beep.Streamer, sampleRate int, bufferSize time.Duration, log *zap.Logger) (*Oto, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   bufferSize,
		})
		if otoErr == nil {
			<-ready
			otoRate = sampleRate
		}
	})
	if otoErr != nil {
		return nil, fmt.Errorf("output: open device: %w", otoErr)
	}
	if otoRate != sampleRate {
		return nil, fmt.Errorf("output: device already open at %d Hz, asked for %d Hz", otoRate, sampleRate)
	}

	p := otoCtx.NewPlayer(newStreamReader(s))
	p.Play()

	log.Info("Audio device opened",
		zap.Int("sampleRate", sampleRate),
		zap.Duration("bufferSize", bufferSize))

	return &Oto{player: p, log: log}, nil
}

// Resume continues a suspended device.
func (o *Oto) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	if err := otoCtx.Resume(); err != nil {
		return fmt.Errorf("output: resume: %w", err)
	}
	if !o.player.IsPlaying() {
		o.player.Play()
	}
	return nil
}

func (o *Oto) Suspend() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	if err := otoCtx.Suspend(); err != nil {
		return fmt.Errorf("output: suspend: %w", err)
	}
	return nil
}

// Close stops the player. The device context stays open for the rest
// of the process.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	err := o.player.Close()
	if ctxErr := otoCtx.Err(); ctxErr != nil {
		err = errors.Join(err, ctxErr)
	}
	o.log.Info("Audio device closed")

	return err
}
