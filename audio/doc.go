// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding-side primitives of the soundboard.
//
// This package contains:
//   - Source, the pull interface every decoder returns
//   - Registry, mapping file extensions to decoders
//   - Resampler, converting clips to the engine sample rate
//   - MonoMixer, for mono renders
//   - ReadAll, which drains a source into per-channel buffers
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 in [-1,1]. ReadSamples returns the number
// of float32 values written and io.EOF once the stream is finished.
//
// # Loading a Clip
//
// The loader picks a decoder by extension, converts the stream to the
// engine rate and reads it fully:
//
//	dec, err := registry.ForPath("/drums/kick.ogg")
//	src, err := dec.Decode(bytes.NewReader(data))
//	planar, err := audio.ReadAll(audio.Convert(src, 44100))
//
// Resampling uses Catmull-Rom interpolation with a one-pole low-pass when
// downsampling.
package audio
