// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	// ErrUnavailable is returned when the binary was built without device support.
	ErrUnavailable = errors.New("output: audio device support not compiled in")
	ErrClosed      = errors.New("output: closed")
)
