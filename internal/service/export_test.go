package service

import "time"

// SetNowForTest fixes the service clock and returns a restore func. Tests
// using it must not run in parallel.
func SetNowForTest(fn func() time.Time) func() {
	prev := nowFunc
	nowFunc = fn
	return func() { nowFunc = prev }
}
