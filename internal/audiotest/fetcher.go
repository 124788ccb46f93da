// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrForced is returned by Fetcher for paths marked as failing.
var ErrForced = errors.New("forced fetch failure")

// Fetcher serves in-memory files and counts requests per path.
// Paths listed in Failures fail that many times before succeeding;
// a negative count fails forever.
type Fetcher struct {
	mu       sync.Mutex
	files    map[string][]byte
	failures map[string]int
	calls    map[string]int
	delay    time.Duration
}

func NewFetcher(files map[string][]byte) *Fetcher {
	return &Fetcher{
		files:    files,
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
}

// Fail makes the next n fetches of path fail. n < 0 fails forever.
func (f *Fetcher) Fail(path string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = n
}

// SetDelay makes every fetch wait d before answering.
func (f *Fetcher) SetDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// Calls returns how often path was fetched.
func (f *Fetcher) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	f.calls[path]++
	delay := f.delay
	fail := f.failures[path]
	if fail > 0 {
		f.failures[path] = fail - 1
	}
	data, ok := f.files[path]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if fail != 0 || !ok {
		return nil, ErrForced
	}

	return data, nil
}
