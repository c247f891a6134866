package tasks

import "time"

// Config holds configuration for the scrape queue.
type Config struct {
	// Workers is the number of concurrent scrape workers. Default: 2
	Workers int

	// ReleaseAfter is when stuck tasks are released back to the queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks are cleaned up. Default: 1h
	CleanupInterval time.Duration

	// OutputDir is where finished scrapes drop their chapter-data JSON. Default: .
	OutputDir string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
		OutputDir:       ".",
	}
}
