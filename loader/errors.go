// SPDX-License-Identifier: EPL-2.0

package loader

import "errors"

var (
	// ErrInvalidSound rejects folders and entries without a path before any fetch
	ErrInvalidSound = errors.New("loader: invalid sound")

	// ErrPermanentFailure marks a path whose retries are exhausted
	ErrPermanentFailure = errors.New("loader: permanently failed")

	// ErrStatus is returned by HTTPFetcher for non-2xx responses
	ErrStatus = errors.New("loader: unexpected status")
)
