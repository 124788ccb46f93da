// SPDX-License-Identifier: EPL-2.0

package catalog

import "errors"

var (
	// ErrMissingPath marks an entry without an addressable path
	ErrMissingPath = errors.New("catalog: sound has no path")

	// ErrUnknownType marks an entry whose type is neither sound nor folder
	ErrUnknownType = errors.New("catalog: unknown entry type")

	// ErrStatus is returned when the catalog endpoint answers with a non-2xx code
	ErrStatus = errors.New("catalog: unexpected status")
)
