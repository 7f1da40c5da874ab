// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that schedules work takes a [Clock] instead of calling
// time.AfterFunc directly. Production passes [Real]; tests pass a
// [FakeClock] and drive time themselves:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	watcher, _ := watch.Start(ctx, watch.Config{Path: path, Clock: fake})
//	// ... trigger an event ...
//	fake.WaitForTimers(1)          // the debounce timer is armed
//	fake.Advance(watch.DefaultDebounce)
//
// WaitForTimers closes the race between another goroutine arming a
// timer and the test advancing past it.
package clock
