package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BigBrown10/director-v2/internal/config"
	"github.com/BigBrown10/director-v2/internal/planner"
	"github.com/BigBrown10/director-v2/internal/queue"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one job in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(_ *config.Config, store *queue.Store) error {
				job, err := findJob(cmd, store, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Job:         %s\n", job.ID)
				fmt.Fprintf(out, "Status:      %s\n", colorizeStatus(string(job.Status), shouldColorize(out)))
				fmt.Fprintf(out, "Progress:    %s (%.0f%%)\n", job.ProgressStage, job.ProgressPercent)
				fmt.Fprintf(out, "Instruction: %s\n", instructionSummary(job))
				fmt.Fprintf(out, "Target URL:  %s\n", job.TargetURL)
				if job.ConceptID != "" {
					fmt.Fprintf(out, "Concept:     %s\n", job.ConceptID)
				}
				fmt.Fprintf(out, "Credentials: %s\n", yesNo(job.HasCredentials()))
				fmt.Fprintf(out, "Created:     %s\n", job.CreatedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Updated:     %s\n", job.UpdatedAt.Local().Format(time.DateTime))

				if tl := job.Timeline; tl != nil {
					fmt.Fprintf(out, "\nTimeline: %d events over %.1fs (concept %s)\n", len(tl.Events), tl.DurationSeconds, tl.ConceptID)
					for _, event := range tl.Events {
						line := fmt.Sprintf("  %6.1fs  %-7s", event.Timestamp, event.Action)
						if event.Selector != "" {
							line += " " + event.Selector
						}
						if event.Value != "" {
							line += " " + truncate(event.Value, 40)
						}
						if event.Description != "" {
							line += "  # " + event.Description
						}
						fmt.Fprintln(out, line)
					}
				}

				if job.RawRecordingPath != "" {
					fmt.Fprintf(out, "\nRaw recording: %s\n", job.RawRecordingPath)
				}
				if job.FinalVideoPath != "" {
					fmt.Fprintf(out, "Final video:   %s\n", job.FinalVideoPath)
				}
				if job.ErrorMessage != "" {
					fmt.Fprintf(out, "\nError: %s\n", job.ErrorMessage)
				}
				return nil
			})
		},
	}
}

// findJob accepts a full job id or an unambiguous prefix.
func findJob(cmd *cobra.Command, store *queue.Store, arg string) (*queue.Job, error) {
	arg = strings.TrimSpace(arg)
	job, err := store.GetByID(cmd.Context(), arg)
	if err == nil {
		return job, nil
	}

	jobs, listErr := store.List(cmd.Context())
	if listErr != nil {
		return nil, listErr
	}
	var match *queue.Job
	for _, candidate := range jobs {
		if strings.HasPrefix(candidate.ID, arg) {
			if match != nil {
				return nil, fmt.Errorf("job id prefix %q is ambiguous", arg)
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, fmt.Errorf("job %q not found", arg)
	}
	return match, nil
}

func instructionSummary(job *queue.Job) string {
	if text, ok := strings.CutPrefix(job.Instruction, planner.TextSignalPrefix); ok {
		return text
	}
	return "narration: " + job.Instruction
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
