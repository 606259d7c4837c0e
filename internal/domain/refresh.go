package domain

import "time"

// DefaultRefreshInterval matches the gateway dashboard default
const DefaultRefreshInterval = 30 * time.Second

// RefreshIntervals are the auto-refresh intervals offered by the console
var RefreshIntervals = []time.Duration{
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

// ValidRefreshInterval reports whether d is one of RefreshIntervals
func ValidRefreshInterval(d time.Duration) bool {
	for _, v := range RefreshIntervals {
		if v == d {
			return true
		}
	}
	return false
}

// NextRefreshInterval returns the interval that follows d, wrapping around
func NextRefreshInterval(d time.Duration) time.Duration {
	for i, v := range RefreshIntervals {
		if v == d {
			return RefreshIntervals[(i+1)%len(RefreshIntervals)]
		}
	}
	return DefaultRefreshInterval
}

// FetchMode distinguishes user-triggered fetches from timer-triggered ones
type FetchMode int

const (
	// Foreground fetches show the loading indicator and report failures
	Foreground FetchMode = iota
	// Background fetches are silent
	Background
)

func (m FetchMode) String() string {
	if m == Background {
		return "background"
	}
	return "foreground"
}
