package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the service
	BasePath string        // Path placed before the /fog routes
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for test output
	Verbose  bool          // Enable verbose logging
}

// Stats holds run statistics.
type Stats struct {
	RunID       string
	StepsPassed int
	StepsFailed int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}
