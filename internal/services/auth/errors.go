package auth

import "fmt"

// LockoutActiveError rejects an attempt made while a lockout window is
// still open. Counters are never touched on this path.
type LockoutActiveError struct {
	SecondsRemaining int
}

func (e *LockoutActiveError) Error() string {
	return fmt.Sprintf("account locked, try again in %s", humanizeDuration(e.SecondsRemaining))
}

// LockoutTriggeredError reports that this failed attempt started a new
// lockout window.
type LockoutTriggeredError struct {
	Seconds            int
	NextLockoutSeconds int
}

func (e *LockoutTriggeredError) Error() string {
	return fmt.Sprintf("too many failed attempts, account locked for %s", humanizeDuration(e.Seconds))
}

// HumanDuration renders the window length for the client.
func (e *LockoutTriggeredError) HumanDuration() string {
	return humanizeDuration(e.Seconds)
}

// BadPasswordError reports a failed attempt that did not trigger a
// window, together with how many free attempts remain.
type BadPasswordError struct {
	AttemptsRemaining  int
	NextLockoutSeconds int
}

func (e *BadPasswordError) Error() string { return "incorrect password" }
