package auth

import "fmt"

// Progressive login lockout. After every third consecutive failure
// (starting with the 4th attempt) the account is locked for an
// exponentially growing window; between windows the user gets the
// remaining failures of the current block of three for free.
const (
	lockoutBlockSize   = 3     // failures per block before a window triggers
	lockoutBaseSeconds = 30    // first window doubles from here
	lockoutMaxSeconds  = 86400 // windows cap at one day
)

// lockoutTriggered reports whether the given failure count (after
// increment) starts a new lockout window. Windows start at attempts
// 4, 7, 10, ...
func lockoutTriggered(failedAttempts int) bool {
	return failedAttempts >= lockoutBlockSize+1 &&
		(failedAttempts-1)%lockoutBlockSize == 0
}

// lockoutDuration returns the window length in seconds for the given
// failure count: min(30 * 2^floor((n-1)/3), 86400).
func lockoutDuration(failedAttempts int) int {
	step := (failedAttempts - 1) / lockoutBlockSize
	dur := lockoutBaseSeconds
	for i := 0; i < step; i++ {
		dur *= 2
		if dur >= lockoutMaxSeconds {
			return lockoutMaxSeconds
		}
	}
	return dur
}

// attemptsRemaining returns how many more failures the current block
// of three absorbs before the next window triggers.
func attemptsRemaining(failedAttempts int) int {
	return (lockoutBlockSize - 1) - (failedAttempts-1)%lockoutBlockSize
}

// nextLockoutSeconds projects the length of the next window after a
// failure that did not trigger one: 30 * 2^floor(n/3).
func nextLockoutSeconds(failedAttempts int) int {
	step := failedAttempts / lockoutBlockSize
	dur := lockoutBaseSeconds
	for i := 0; i < step; i++ {
		dur *= 2
		if dur >= lockoutMaxSeconds {
			return lockoutMaxSeconds
		}
	}
	return dur
}

// humanizeDuration renders seconds in the largest unit that keeps the
// value at one or above.
func humanizeDuration(secs int) string {
	switch {
	case secs >= 3600:
		return plural(secs/3600, "hour")
	case secs >= 60:
		return plural(secs/60, "minute")
	default:
		return plural(secs, "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
