// SPDX-License-Identifier: EPL-2.0

// Package server serves a directory of sounds: the catalog at
// /api/sounds and the files themselves under /api/audio/.
package server
