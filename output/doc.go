// SPDX-License-Identifier: EPL-2.0

// Package output moves rendered audio out of the process, either to the
// system's sound device or, on machines without one, into a clocked sink
// that pulls at real-time pace.
package output
