// SPDX-License-Identifier: EPL-2.0

package soundboard

import "errors"

var (
	// ErrNotInitialized is returned when sound is requested before Init.
	ErrNotInitialized = errors.New("soundboard: session not initialized")
	ErrDisposed       = errors.New("soundboard: session disposed")
	// ErrNoFetcher is returned by New without a way to fetch assets.
	ErrNoFetcher = errors.New("soundboard: no fetcher configured")
)
