package resilience

import "time"

// QuotaWindow is the football-data.org rate window. The free tier allows
// ten requests per rolling minute, so leaving the open state sooner only retries a
// provider that is still throttling us.
const QuotaWindow = time.Minute

// CircuitBreakerConfig guards calls to a single upstream. Only failures the
// caller classifies as upstream unavailability count towards the threshold.
type CircuitBreakerConfig struct {
	Enabled bool
	// FailureThreshold is the number of consecutive unavailability errors
	// that opens the circuit. One such error may already represent a full
	// rate-limit retry cycle.
	FailureThreshold int
	// OpenTimeout is how long the circuit rejects calls before a trial call.
	OpenTimeout time.Duration
	// HalfOpenMaxReq caps trial calls while half-open. Provider calls are
	// serialized, so more than one trial call only queues.
	HalfOpenMaxReq int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 3,
		OpenTimeout:      QuotaWindow,
		HalfOpenMaxReq:   1,
	}
}

// NormalizeCircuitBreakerConfig fills out-of-range fields with defaults.
// Enabled is left as given.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}
