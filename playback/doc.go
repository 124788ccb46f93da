// SPDX-License-Identifier: EPL-2.0

// Package playback decides what is audible. A Controller plays one
// sound at a time, tracks its position from the wall clock, and can
// reverse it mid-flight without a gap.
package playback
