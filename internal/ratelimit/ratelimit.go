package ratelimit

import (
	"log/slog"
	"time"

	"github.com/weberdc/refetch-tweets/internal/domain"
)

const (
	// Pause once fewer calls than this remain in the window.
	minCallsRemaining = 10
	// Pause once the window resets sooner than this many seconds.
	minSecondsToReset = 10
	// Extra seconds slept past the reported reset to absorb clock skew
	// between us and the API's window accounting.
	resetSlack = 5
)

// Limiter decides whether the refetch loop must sit out the rest of the
// current rate-limit window. A pause blocks the caller and runs to
// completion; cutting a wait short risks crossing into a hard throttle.
type Limiter struct {
	// Sleep blocks for the given duration. Replaceable so tests can record
	// the pause instead of serving it.
	Sleep func(time.Duration)
}

func New() *Limiter {
	return &Limiter{Sleep: time.Sleep}
}

// MaybeDoze sleeps until just past the window reset when the remaining call
// budget or the time left in the window runs low. A nil status means the
// service reported nothing, so there is nothing to act on.
func (l *Limiter) MaybeDoze(st *domain.RateLimitStatus) {
	if st == nil {
		return
	}
	if st.Remaining >= minCallsRemaining && st.SecondsUntilReset >= minSecondsToReset {
		return
	}
	wait := time.Duration(st.SecondsUntilReset+resetSlack) * time.Second
	slog.Info("Rate limit reached, waiting", "seconds", int(wait.Seconds()), "remaining", st.Remaining)
	l.Sleep(wait)
	slog.Info("Resuming")
}
