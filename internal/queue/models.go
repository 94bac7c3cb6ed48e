package queue

import (
	"fmt"
	"time"

	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

// Status represents a job's position in the lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// AllStatuses lists every lifecycle status in display order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}
}

// Valid reports whether the status is one of the four lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether a job in this status will never change again.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

// CanTransition reports whether the lifecycle permits moving from one status
// to another. Terminal statuses permit nothing.
func CanTransition(from, to Status) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Job is one video request, from submission through final render.
type Job struct {
	ID          string
	Status      Status
	Instruction string
	TargetURL   string

	// ConceptID is the caller's requested creative concept; the resolved
	// concept id is recorded on the timeline once planning completes.
	ConceptID string
	Styling   *concepts.Styling

	// CredentialsSealed holds AES-GCM sealed login credentials, or nil.
	// Plaintext credentials are never stored.
	CredentialsSealed []byte

	Timeline *timeline.Timeline

	RawRecordingPath string
	FinalVideoPath   string

	ErrorMessage    string
	ProgressStage   string
	ProgressPercent float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCredentials reports whether sealed credentials accompany the job.
func (j *Job) HasCredentials() bool {
	return len(j.CredentialsSealed) > 0
}

// SetProgress records the current pipeline stage and completion estimate.
func (j *Job) SetProgress(stage string, percent float64) {
	j.ProgressStage = stage
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	j.ProgressPercent = percent
}

// Fail moves the job to the terminal failed status with a human-readable
// message.
func (j *Job) Fail(message string) {
	j.Status = StatusFailed
	j.ErrorMessage = message
}

// Validate checks submission-time requirements.
func (j *Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("job id is required")
	}
	if !j.Status.Valid() {
		return fmt.Errorf("job status %q is not valid", j.Status)
	}
	if j.Instruction == "" {
		return fmt.Errorf("job instruction is required")
	}
	if j.TargetURL == "" {
		return fmt.Errorf("job target url is required")
	}
	return nil
}
