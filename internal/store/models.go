package store

import "time"

// FixRun records one execution of the repair pipeline
type FixRun struct {
	ID           int64
	Mode         string // "normal", "aggressive", "restore"
	StartTime    time.Time
	EndTime      time.Time
	Status       string // "running", "success", "failed"
	ErrorMessage string
}

// StepResult records the outcome of a single pipeline step within a run
type StepResult struct {
	ID        int64
	RunID     int64
	Step      string
	Severity  string // "ok", "advisory", "fatal"
	Message   string
	CreatedAt time.Time
}
