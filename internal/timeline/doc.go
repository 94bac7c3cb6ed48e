// Package timeline defines the ordered plan of timed actions produced by the
// planner and consumed, read-only, by the recorder and compositor.
package timeline
