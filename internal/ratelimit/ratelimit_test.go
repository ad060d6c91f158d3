package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/weberdc/refetch-tweets/internal/domain"
)

func recordingLimiter() (*Limiter, *[]time.Duration) {
	var slept []time.Duration
	l := &Limiter{Sleep: func(d time.Duration) { slept = append(slept, d) }}
	return l, &slept
}

func TestMaybeDoze_NilStatusIsNoOp(t *testing.T) {
	l, slept := recordingLimiter()

	l.MaybeDoze(nil)

	assert.Empty(t, *slept)
}

func TestMaybeDoze_LowRemainingTriggersPause(t *testing.T) {
	l, slept := recordingLimiter()

	l.MaybeDoze(&domain.RateLimitStatus{Remaining: 9, SecondsUntilReset: 100})

	assert.Equal(t, []time.Duration{105 * time.Second}, *slept)
}

func TestMaybeDoze_ImminentResetTriggersPause(t *testing.T) {
	l, slept := recordingLimiter()

	l.MaybeDoze(&domain.RateLimitStatus{Remaining: 500, SecondsUntilReset: 9})

	assert.Equal(t, []time.Duration{14 * time.Second}, *slept)
}

func TestMaybeDoze_HealthyWindowProceeds(t *testing.T) {
	l, slept := recordingLimiter()

	// Both values sit exactly on the thresholds, which do not trigger.
	l.MaybeDoze(&domain.RateLimitStatus{Remaining: 10, SecondsUntilReset: 10})

	assert.Empty(t, *slept)
}

func TestMaybeDoze_ZeroReset(t *testing.T) {
	l, slept := recordingLimiter()

	l.MaybeDoze(&domain.RateLimitStatus{Remaining: 0, SecondsUntilReset: 0})

	// Only the safety margin remains to sleep.
	assert.Equal(t, []time.Duration{5 * time.Second}, *slept)
}
