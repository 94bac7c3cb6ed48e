// Package queue persists video jobs in SQLite and enforces the job lifecycle.
//
// A job moves pending -> processing -> completed or failed. Failed and
// completed are terminal; a job is never retried automatically. The store is
// safe for concurrent use from multiple goroutines within one process.
package queue
