// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/catalog"
	"github.com/ik5/soundboard/engine"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultSampleRate = 44100
	DefaultBatchSize  = 5
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultTimeout    = 10 * time.Second
)

type Options struct {
	// SampleRate every sound is converted to; it must match the chain.
	SampleRate int
	// BatchSize is how many loads LoadBatch runs at once.
	BatchSize int
	// MaxRetries after the first attempt. Zero uses DefaultMaxRetries,
	// negative means no retries.
	MaxRetries int
	// RetryDelay is multiplied by the attempt number before each retry.
	RetryDelay time.Duration
	// Timeout bounds a single attempt.
	Timeout time.Duration
	Logger  *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	o.MaxRetries = max(o.MaxRetries, 0)
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// LoadedSound is a decoded sound ready to play in either direction. The
// two voices own separate copies of the samples.
type LoadedSound struct {
	Path     string
	Duration float64 // seconds
	Forward  *engine.Voice
	Reversed *engine.Voice
}

// Loader fetches, decodes and caches sounds by path. A path is loaded at
// most once; concurrent requests share the in-flight load.
type Loader struct {
	fetcher  Fetcher
	registry *audio.Registry
	opts     Options
	log      *zap.Logger

	flight singleflight.Group

	mu     sync.RWMutex
	cache  map[string]*LoadedSound
	failed map[string]error
}

func New(fetcher Fetcher, registry *audio.Registry, opts Options) *Loader {
	opts = opts.withDefaults()

	return &Loader{
		fetcher:  fetcher,
		registry: registry,
		opts:     opts,
		log:      opts.Logger.Named("loader"),
		cache:    make(map[string]*LoadedSound),
		failed:   make(map[string]error),
	}
}

// Options returns the effective options.
func (l *Loader) Options() Options { return l.opts }

// Load returns the sound at s.Path, loading it on first use. ctx only
// bounds how long the caller waits; a started load runs to completion
// and is cached for later callers.
func (l *Loader) Load(ctx context.Context, s catalog.Sound) (*LoadedSound, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSound, err)
	}
	if s.Type != catalog.KindSound {
		return nil, fmt.Errorf("%w: %s is a %s", ErrInvalidSound, s.Path, s.Type)
	}

	if ls, err := l.lookup(s.Path); ls != nil || err != nil {
		return ls, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := l.flight.DoChan(s.Path, func() (any, error) {
		return l.loadWithRetry(context.WithoutCancel(ctx), s.Path)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*LoadedSound), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// lookup returns a cached sound or the recorded permanent failure, and
// nothing for paths not tried yet.
func (l *Loader) lookup(p string) (*LoadedSound, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if ls, ok := l.cache[p]; ok {
		return ls, nil
	}
	if err, ok := l.failed[p]; ok {
		return nil, fmt.Errorf("%w: %s: %w", ErrPermanentFailure, p, err)
	}
	return nil, nil
}

func (l *Loader) loadWithRetry(ctx context.Context, p string) (*LoadedSound, error) {
	// a flight that finished just before this one started already stored it
	if ls, err := l.lookup(p); ls != nil || err != nil {
		return ls, err
	}

	var lastErr error
	for attempt := 0; attempt <= l.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(l.opts.RetryDelay * time.Duration(attempt))
		}

		actx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
		ls, err := l.loadOnce(actx, p)
		cancel()

		if err == nil {
			l.mu.Lock()
			l.cache[p] = ls
			l.mu.Unlock()

			l.log.Debug("Sound loaded",
				zap.String("path", p),
				zap.Float64("duration", ls.Duration),
				zap.Int("attempt", attempt+1))
			return ls, nil
		}

		lastErr = err
		if errors.Is(err, audio.ErrUnknownFormat) {
			break
		}
		if attempt < l.opts.MaxRetries {
			l.log.Warn("Load failed, retrying",
				zap.String("path", p),
				zap.Int("attempt", attempt+1),
				zap.Int("maxRetries", l.opts.MaxRetries),
				zap.Error(err))
		}
	}

	l.mu.Lock()
	l.failed[p] = lastErr
	l.mu.Unlock()

	l.log.Error("Load failed permanently",
		zap.String("path", p),
		zap.Error(lastErr))

	return nil, fmt.Errorf("%w: %s: %w", ErrPermanentFailure, p, lastErr)
}

// loadOnce decodes the forward buffer, then derives the reversed voice
// from a deep copy of it.
func (l *Loader) loadOnce(ctx context.Context, p string) (*LoadedSound, error) {
	dec, err := l.registry.ForPath(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	data, err := l.fetcher.Fetch(ctx, p)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	defer src.Close()

	planar, err := audio.ReadAll(audio.Convert(src, l.opts.SampleRate))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}

	buf, err := engine.FromPlanar(planar, l.opts.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}

	reversed := engine.NewVoice(buf.Clone())
	reversed.SetReverse(true)

	return &LoadedSound{
		Path:     p,
		Duration: buf.Duration(),
		Forward:  engine.NewVoice(buf),
		Reversed: reversed,
	}, nil
}

// Get returns a sound that has finished loading.
func (l *Loader) Get(p string) (*LoadedSound, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ls, ok := l.cache[p]
	return ls, ok
}

// Loaded lists the paths ready to play, sorted.
func (l *Loader) Loaded() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return sortedKeys(l.cache)
}

// Failed lists the paths that failed permanently, sorted.
func (l *Loader) Failed() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return sortedKeys(l.failed)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
