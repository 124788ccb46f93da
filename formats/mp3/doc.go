// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III streams through github.com/hajimehoshi/go-mp3.
//
// Output is always interleaved stereo at the stream's own sample rate;
// mono files are duplicated into both channels by the underlying decoder.
package mp3
