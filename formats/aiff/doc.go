// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files through github.com/go-audio/aiff.
//
// 16, 24 and 32-bit sample sizes are accepted. AIFF-C compressed
// variants are rejected with ErrNotAiffFile or ErrUnsupportedBitDepth.
// Samples come back interleaved as float32 in [-1, 1].
package aiff
