package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BigBrown10/director-v2/internal/config"
	"github.com/BigBrown10/director-v2/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the job queue",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newShowCommand(ctx))

	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var listStatuses []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(_ *config.Config, store *queue.Store) error {
				var statuses []queue.Status
				for _, statusStr := range listStatuses {
					statuses = append(statuses, queue.Status(statusStr))
				}

				jobs, err := store.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(jobs) == 0 {
					fmt.Fprintln(out, "Queue is empty")
					return nil
				}

				colorize := shouldColorize(out)
				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					rows = append(rows, []string{
						shortID(job.ID),
						truncate(instructionSummary(job), 48),
						colorizeStatus(string(job.Status), colorize),
						fmt.Sprintf("%s %3.0f%%", job.ProgressStage, job.ProgressPercent),
						job.CreatedAt.Local().Format(time.DateTime),
					})
				}
				table := renderTable(
					[]string{"ID", "Instruction", "Status", "Progress", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&listStatuses, "status", "s", nil, "Filter by job status (repeatable)")
	return cmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue status summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(_ *config.Config, store *queue.Store) error {
				jobs, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(jobs) == 0 {
					fmt.Fprintln(out, "Queue is empty")
					return nil
				}

				counts := make(map[queue.Status]int)
				for _, job := range jobs {
					counts[job.Status]++
				}
				rows := make([][]string, 0, len(counts))
				for _, status := range queue.AllStatuses() {
					if counts[status] == 0 {
						continue
					}
					rows = append(rows, []string{string(status), fmt.Sprintf("%d", counts[status])})
				}
				table := renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var clearCompleted bool
	var clearFailed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove finished jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(_ *config.Config, store *queue.Store) error {
				var statuses []queue.Status
				switch {
				case clearCompleted && clearFailed:
					statuses = []queue.Status{queue.StatusCompleted, queue.StatusFailed}
				case clearCompleted:
					statuses = []queue.Status{queue.StatusCompleted}
				case clearFailed:
					statuses = []queue.Status{queue.StatusFailed}
				}

				removed, err := store.Clear(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d jobs\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearCompleted, "completed", false, "Remove only completed jobs")
	cmd.Flags().BoolVar(&clearFailed, "failed", false, "Remove only failed jobs")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(value string, limit int) string {
	if limit <= 3 || len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
