// Package services provides shared error classification and context
// annotation helpers for the external service clients and pipeline phases.
package services
