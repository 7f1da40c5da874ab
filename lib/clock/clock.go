// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for code that schedules work. Production
// code uses [Real]; tests use [Fake] and advance time explicitly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc calls f in its own goroutine (real) or in the
	// advancing goroutine (fake) once d has elapsed. The returned Timer
	// cancels or reschedules the call.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending [Clock.AfterFunc] call.
type Timer struct {
	stop  func() bool
	reset func(time.Duration) bool
}

// Stop cancels the call. It reports whether the call was still pending.
func (t *Timer) Stop() bool { return t.stop() }

// Reset reschedules the call to run d from now, whether or not it has
// already run. It reports whether the call was still pending.
func (t *Timer) Reset(d time.Duration) bool { return t.reset(d) }
