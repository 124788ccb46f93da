// SPDX-License-Identifier: EPL-2.0

// Package soundboard plays short audio clips on demand with live speed,
// pitch, reverb and instant reverse.
//
// A Session owns one effect chain, one output device, a loader that
// caches decoded clips by path, and a controller that keeps exactly one
// clip sounding:
//
//	sess, err := soundboard.New(soundboard.Options{
//	    Fetcher: loader.NewHTTPFetcher("http://localhost:5174"),
//	    Output:  soundboard.DeviceOutput(0, logger),
//	})
//	if err != nil {
//	    return err
//	}
//	defer sess.Dispose()
//
//	if err := sess.Init(ctx); err != nil {
//	    return err
//	}
//	sess.Preload(ctx, sounds)
//	err = sess.PlayPath(ctx, "/drums/kick.ogg")
//
// ToggleInstantReverse switches the sounding clip to its pre-reversed
// copy at the same position, without a gap.
//
// # Packages
//
//   - audio and formats/* decode WAV, MP3, Ogg Vorbis and AIFF
//   - engine holds the voices and the pitch and reverb stages
//   - loader fetches, decodes and caches clips
//   - playback is the controller state machine
//   - output drives the sound device or a headless clock
//   - server and control expose the board over HTTP
//
// ResampleToMono16 turns any source into 16-bit mono PCM, which is how
// clips are rendered to WAV files.
package soundboard
