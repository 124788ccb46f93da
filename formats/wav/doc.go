// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV files and writes mono 16-bit WAVs.
//
// Decoding goes through github.com/go-audio/wav. Plain PCM and
// WAVE_FORMAT_EXTENSIBLE headers are accepted at 16, 24 or 32 bits per
// sample, any channel count and any sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not a RIFF/WAVE stream
//	}
//
// Samples come back interleaved as float32 in [-1, 1].
//
// WriteWAV16 is the inverse used by offline rendering:
//
//	err := wav.WriteWAV16(out, 44100, pcm16)
package wav
