// SPDX-License-Identifier: EPL-2.0

// Package control exposes a running soundboard over HTTP so a UI can
// trigger sounds, change effects and follow the playback state.
package control
