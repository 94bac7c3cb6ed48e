package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/logging"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

const jobColumns = `id, status, instruction, target_url, concept_id, styling_json,
	credentials_sealed, timeline_json, raw_recording_path, final_video_path,
	error_message, progress_stage, progress_percent, created_at, updated_at`

// NewJobParams carries the caller-supplied fields for job creation.
type NewJobParams struct {
	Instruction       string
	TargetURL         string
	ConceptID         string
	Styling           *concepts.Styling
	CredentialsSealed []byte
}

// NewJob creates a pending job and persists it.
func (s *Store) NewJob(ctx context.Context, params NewJobParams) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:                uuid.NewString(),
		Status:            StatusPending,
		Instruction:       strings.TrimSpace(params.Instruction),
		TargetURL:         strings.TrimSpace(params.TargetURL),
		ConceptID:         strings.TrimSpace(params.ConceptID),
		Styling:           params.Styling,
		CredentialsSealed: params.CredentialsSealed,
		ProgressStage:     "queued",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	stylingJSON, timelineJSON, err := encodeJobBlobs(job)
	if err != nil {
		return nil, err
	}

	err = s.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, `
			INSERT INTO jobs (`+jobColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			job.ID, string(job.Status), job.Instruction, job.TargetURL, job.ConceptID,
			stylingJSON, job.CredentialsSealed, timelineJSON,
			job.RawRecordingPath, job.FinalVideoPath,
			job.ErrorMessage, job.ProgressStage, job.ProgressPercent,
			formatTime(job.CreatedAt), formatTime(job.UpdatedAt))
		return execErr
	})
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	s.logger.Info("job created",
		logging.String(logging.FieldJobID, job.ID),
		logging.String("target_url", job.TargetURL))
	return job, nil
}

// GetByID fetches a single job. Returns ErrNotFound for unknown ids.
func (s *Store) GetByID(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load job %s: %w", id, err)
	}
	return job, nil
}

// Update persists every mutable field of the job. Status changes are checked
// against the lifecycle; an illegal change returns ErrInvalidTransition.
func (s *Store) Update(ctx context.Context, job *Job) error {
	if job == nil {
		return fmt.Errorf("update job: nil job")
	}

	current, err := s.GetByID(ctx, job.ID)
	if err != nil {
		return err
	}
	if current.Status != job.Status && !CanTransition(current.Status, job.Status) {
		return fmt.Errorf("%w: %s -> %s for job %s",
			ErrInvalidTransition, current.Status, job.Status, job.ID)
	}

	stylingJSON, timelineJSON, err := encodeJobBlobs(job)
	if err != nil {
		return err
	}
	job.UpdatedAt = time.Now().UTC()

	err = s.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, `
			UPDATE jobs SET
				status = ?, instruction = ?, target_url = ?, concept_id = ?,
				styling_json = ?, credentials_sealed = ?, timeline_json = ?,
				raw_recording_path = ?, final_video_path = ?,
				error_message = ?, progress_stage = ?, progress_percent = ?,
				updated_at = ?
			WHERE id = ?`,
			string(job.Status), job.Instruction, job.TargetURL, job.ConceptID,
			stylingJSON, job.CredentialsSealed, timelineJSON,
			job.RawRecordingPath, job.FinalVideoPath,
			job.ErrorMessage, job.ProgressStage, job.ProgressPercent,
			formatTime(job.UpdatedAt), job.ID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update job %s: %w", job.ID, err)
	}
	return nil
}

// List returns jobs ordered oldest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Clear deletes jobs in the given statuses and reports how many were removed.
// With no statuses it clears only terminal jobs.
func (s *Store) Clear(ctx context.Context, statuses ...Status) (int64, error) {
	if len(statuses) == 0 {
		statuses = []Status{StatusCompleted, StatusFailed}
	}
	placeholders := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, status := range statuses {
		placeholders[i] = "?"
		args[i] = string(status)
	}

	var removed int64
	err := s.withRetry(ctx, func() error {
		result, execErr := s.db.ExecContext(ctx,
			`DELETE FROM jobs WHERE status IN (`+strings.Join(placeholders, ", ")+`)`, args...)
		if execErr != nil {
			return execErr
		}
		removed, execErr = result.RowsAffected()
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(scanner rowScanner) (*Job, error) {
	var (
		job          Job
		status       string
		stylingJSON  sql.NullString
		timelineJSON sql.NullString
		createdAt    string
		updatedAt    string
	)
	err := scanner.Scan(
		&job.ID, &status, &job.Instruction, &job.TargetURL, &job.ConceptID,
		&stylingJSON, &job.CredentialsSealed, &timelineJSON,
		&job.RawRecordingPath, &job.FinalVideoPath,
		&job.ErrorMessage, &job.ProgressStage, &job.ProgressPercent,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	job.Status = Status(status)
	if stylingJSON.Valid && stylingJSON.String != "" {
		styling := &concepts.Styling{}
		if err := json.Unmarshal([]byte(stylingJSON.String), styling); err != nil {
			return nil, fmt.Errorf("decode styling: %w", err)
		}
		job.Styling = styling
	}
	if timelineJSON.Valid && timelineJSON.String != "" {
		tl := &timeline.Timeline{}
		if err := json.Unmarshal([]byte(timelineJSON.String), tl); err != nil {
			return nil, fmt.Errorf("decode timeline: %w", err)
		}
		job.Timeline = tl
	}
	if job.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	if job.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("decode updated_at: %w", err)
	}
	return &job, nil
}

func encodeJobBlobs(job *Job) (stylingJSON, timelineJSON sql.NullString, err error) {
	if job.Styling != nil {
		data, marshalErr := json.Marshal(job.Styling)
		if marshalErr != nil {
			return stylingJSON, timelineJSON, fmt.Errorf("encode styling: %w", marshalErr)
		}
		stylingJSON = sql.NullString{String: string(data), Valid: true}
	}
	if job.Timeline != nil {
		data, marshalErr := json.Marshal(job.Timeline)
		if marshalErr != nil {
			return stylingJSON, timelineJSON, fmt.Errorf("encode timeline: %w", marshalErr)
		}
		timelineJSON = sql.NullString{String: string(data), Valid: true}
	}
	return stylingJSON, timelineJSON, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
