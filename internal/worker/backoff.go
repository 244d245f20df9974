package worker

import "time"

// Webhook retry schedule. The wait before retry N is an explicit lookup,
// attempt numbers are 1-based and clamp to the last entry.
var retryDelays = []time.Duration{
	0,
	60 * time.Second,
	5 * time.Minute,
	30 * time.Minute,
	2 * time.Hour,
}

// acceleratedRetryDelays compresses the schedule for local runs and tests.
var acceleratedRetryDelays = []time.Duration{
	0,
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
	20 * time.Second,
}

func retryDelay(attempt int, accelerated bool) time.Duration {
	table := retryDelays
	if accelerated {
		table = acceleratedRetryDelays
	}
	if attempt < 1 {
		attempt = 1
	}
	if attempt > len(table) {
		attempt = len(table)
	}
	return table[attempt-1]
}
