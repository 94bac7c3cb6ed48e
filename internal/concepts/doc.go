// Package concepts holds the immutable catalog of creative concepts and the
// resolver that maps a requested concept id (or ad hoc styling) onto a
// concrete styling/pacing profile.
package concepts
