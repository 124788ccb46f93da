// SPDX-License-Identifier: EPL-2.0

// Package engine is the playback graph: decoded buffers, voices that play
// them at a variable rate in either direction, and the shared effect chain
// every voice feeds.
//
// The chain is a beep.Streamer; hand it to an output and connect voices
// as they start:
//
//	chain := engine.NewChain(44100)
//	v := engine.NewVoice(buf)
//	v.Start(0)
//	chain.Connect(v)
package engine
