// SPDX-License-Identifier: EPL-2.0

package output

import (
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"go.uber.org/zap"
)

// DefaultPeriod is how often Headless pulls.
const DefaultPeriod = 10 * time.Millisecond

// Headless pulls a streamer at real-time pace without a sound device.
// Rendered audio is discarded unless a sink is set.
type Headless struct {
	r      *streamReader
	frames int
	period time.Duration
	sink   io.Writer
	log    *zap.Logger

	mu        sync.Mutex
	suspended bool
	pulled    int64

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

type HeadlessOption func(*Headless)

func WithPeriod(d time.Duration) HeadlessOption {
	return func(h *Headless) {
		if d > 0 {
			h.period = d
		}
	}
}

// WithSink receives every pulled block as float32LE stereo.
func WithSink(w io.Writer) HeadlessOption {
	return func(h *Headless) { h.sink = w }
}

func WithHeadlessLogger(log *zap.Logger) HeadlessOption {
	return func(h *Headless) { h.log = log }
}

// NewHeadless starts pulling s at sampleRate.
func NewHeadless(s beep.Streamer, sampleRate int, opts ...HeadlessOption) *Headless {
	h := &Headless{
		r:      newStreamReader(s),
		period: DefaultPeriod,
		log:    zap.NewNop(),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.frames = max(1, int(float64(sampleRate)*h.period.Seconds()))

	go h.run()

	h.log.Info("Headless output started",
		zap.Int("sampleRate", sampleRate),
		zap.Duration("period", h.period))

	return h
}

func (h *Headless) run() {
	defer close(h.done)

	ticker := time.NewTicker(h.period)
	defer ticker.Stop()

	block := make([]byte, h.frames*FrameSize)
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.pull(block)
		}
	}
}

func (h *Headless) pull(block []byte) {
	h.mu.Lock()
	if h.suspended {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	n, _ := h.r.Read(block)

	h.mu.Lock()
	h.pulled += int64(n / FrameSize)
	h.mu.Unlock()

	if h.sink != nil {
		if _, err := h.sink.Write(block[:n]); err != nil {
			h.log.Warn("Headless sink write failed", zap.Error(err))
		}
	}
}

// Frames is the number of frames pulled so far.
func (h *Headless) Frames() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pulled
}

func (h *Headless) Suspended() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.suspended
}

func (h *Headless) Resume() error {
	select {
	case <-h.done:
		return ErrClosed
	default:
	}

	h.mu.Lock()
	h.suspended = false
	h.mu.Unlock()
	return nil
}

func (h *Headless) Suspend() error {
	h.mu.Lock()
	h.suspended = true
	h.mu.Unlock()
	return nil
}

// Close stops the pull loop and waits for it to exit.
func (h *Headless) Close() error {
	h.once.Do(func() {
		close(h.stop)
		<-h.done
		h.log.Info("Headless output stopped", zap.Int64("frames", h.Frames()))
	})
	return nil
}
