package model

// JobStatus represents the state of one export run
type JobStatus string

const (
	// JobStatusIdle means the run was created but not started
	JobStatusIdle JobStatus = "Idle"

	// JobStatusValidating means inputs are being checked
	JobStatusValidating JobStatus = "Validating"

	// JobStatusRunningIOS means iOS variants are being written
	JobStatusRunningIOS JobStatus = "Running iOS"

	// JobStatusRunningAndroid means Android variants are being written
	JobStatusRunningAndroid JobStatus = "Running Android"

	// JobStatusStopping means a stop was requested and the run ends after the current task
	JobStatusStopping JobStatus = "Stopping"

	// JobStatusCompleted means every task finished successfully
	JobStatusCompleted JobStatus = "Completed"

	// JobStatusRejected means validation failed and nothing was written
	JobStatusRejected JobStatus = "Rejected"

	// JobStatusStopped means the run was stopped by user between tasks
	JobStatusStopped JobStatus = "Stopped"

	// JobStatusError means a task failed and the run halted
	JobStatusError JobStatus = "Error"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the run is in an active state
func (js JobStatus) IsActive() bool {
	return js == JobStatusValidating || js == JobStatusRunningIOS ||
		js == JobStatusRunningAndroid || js == JobStatusStopping
}

// IsFinished returns true if the run reached a terminal state
func (js JobStatus) IsFinished() bool {
	return js == JobStatusCompleted || js == JobStatusRejected ||
		js == JobStatusStopped || js == JobStatusError
}

// RunningStatus returns the running status for a platform
func RunningStatus(p Platform) JobStatus {
	if p == PlatformAndroid {
		return JobStatusRunningAndroid
	}
	return JobStatusRunningIOS
}
