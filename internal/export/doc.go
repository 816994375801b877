package export

// Package export implements the resizing pipeline: validating an export job,
// creating the dated export folder, writing every (file, platform, scale) variant,
// and reporting progress. Service runs jobs on a background goroutine and
// propagates run state to the UI through an update callback.
