package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BigBrown10/director-v2/internal/logging"
)

// ClaimNextPending atomically moves the oldest pending job to processing and
// returns it. Returns (nil, nil) when the queue has no pending work.
func (s *Store) ClaimNextPending(ctx context.Context) (*Job, error) {
	var claimed *Job
	err := s.withRetry(ctx, func() error {
		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return txErr
		}
		defer tx.Rollback()

		row := tx.QueryRowContext(ctx, `
			SELECT `+jobColumns+` FROM jobs
			WHERE status = ?
			ORDER BY created_at ASC, id ASC
			LIMIT 1`, string(StatusPending))
		job, scanErr := scanJob(row)
		if errors.Is(scanErr, sql.ErrNoRows) {
			claimed = nil
			return tx.Commit()
		}
		if scanErr != nil {
			return scanErr
		}

		job.Status = StatusProcessing
		job.ProgressStage = "starting"
		job.UpdatedAt = time.Now().UTC()
		if _, execErr := tx.ExecContext(ctx, `
			UPDATE jobs SET status = ?, progress_stage = ?, updated_at = ?
			WHERE id = ?`,
			string(job.Status), job.ProgressStage, formatTime(job.UpdatedAt), job.ID); execErr != nil {
			return execErr
		}
		if commitErr := tx.Commit(); commitErr != nil {
			return commitErr
		}
		claimed = job
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("claim pending job: %w", err)
	}
	return claimed, nil
}

// MarkFailed moves a job to the terminal failed status with a message.
func (s *Store) MarkFailed(ctx context.Context, id, message string) error {
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: %s is already %s", ErrInvalidTransition, id, job.Status)
	}
	job.Fail(message)
	if err := s.Update(ctx, job); err != nil {
		return err
	}
	s.logger.Warn("job failed",
		logging.String(logging.FieldJobID, id),
		logging.String("reason", message))
	return nil
}

// FailInterrupted fails jobs left in processing by an earlier run. The
// lifecycle has no retries, so work interrupted mid-flight cannot resume.
func (s *Store) FailInterrupted(ctx context.Context) (int, error) {
	stuck, err := s.List(ctx, StatusProcessing)
	if err != nil {
		return 0, err
	}
	for _, job := range stuck {
		if err := s.MarkFailed(ctx, job.ID, "interrupted before completion"); err != nil {
			return 0, err
		}
	}
	if len(stuck) > 0 {
		s.logger.Info("failed interrupted jobs", logging.Int("count", len(stuck)))
	}
	return len(stuck), nil
}
