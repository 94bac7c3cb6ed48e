// Package workflow orchestrates the job pipeline: plan, record, render. One
// job is processed at a time; a phase failure moves the job to the terminal
// failed status with a diagnostic message, completed jobs are never revisited.
package workflow
