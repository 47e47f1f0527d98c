package config

import "time"

// Rate limit configuration for solution submissions
type RateLimitConfig struct {
	AttemptsThreshold1 int           // Number of submissions before first cooldown
	CooldownDuration1  time.Duration // First cooldown window
	AttemptsThreshold2 int           // Number of submissions before second cooldown
	CooldownDuration2  time.Duration // Second cooldown window
}

var DefaultSubmissionRateLimit = RateLimitConfig{
	AttemptsThreshold1: 3,
	CooldownDuration1:  3 * time.Minute,
	AttemptsThreshold2: 5,
	CooldownDuration2:  5 * time.Minute,
}

// Disabled reports whether no threshold is configured
func (r RateLimitConfig) Disabled() bool {
	return r.AttemptsThreshold1 <= 0 && r.AttemptsThreshold2 <= 0
}
