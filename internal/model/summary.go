package model

import "time"

// BuildSummary captures metrics from a single warehouse build run.
type BuildSummary struct {
	BuildID           string
	InputDir          string
	StagingDir        string
	RawAppointments   int64
	RawFeedback       int64
	RawProviders      int64
	RawPatients       int64
	TableRows         map[string]int
	ChecksRun         bool
	TotalIssues       int
	DurationLoad      time.Duration
	DurationTransform time.Duration
	DurationWrite     time.Duration
	DurationCheck     time.Duration
	DurationTotal     time.Duration
}
