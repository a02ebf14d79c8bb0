// Package clock provides an injectable time source.
//
// Components that classify records by "now" (license expiry, current
// week) take a Clock instead of calling time.Now directly, so tests can
// pin the evaluation time.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

// Fixed returns a Clock frozen at t. Intended for tests.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }
