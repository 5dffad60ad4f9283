package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	StageParse   Stage = "parse"
	StageCheck   Stage = "check"
	StageLower   Stage = "lower"
	StageEmit    Stage = "emit"
	StageRuntime Stage = "runtime"
	StageCompile Stage = "compile"
	StageRun     Stage = "run"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageParse, StageCheck, StageLower, StageEmit, StageRuntime, StageCompile, StageRun}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the stage is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the stage is done.
	StatusDone Status = "done"
	// StatusCached indicates the stage was satisfied by the disk cache.
	StatusCached Status = "cached"
	// StatusError indicates the stage encountered an error.
	StatusError Status = "error"
)

// Event reports progress for one stage of one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Message string
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
