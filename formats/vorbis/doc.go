// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through github.com/jfreymuth/oggvorbis.
//
// The channel count and sample rate are those of the stream. For stereo
// files samples are interleaved:
//
//	[L0, R0, L1, R1, ...]
package vorbis
