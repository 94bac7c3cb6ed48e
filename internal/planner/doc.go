// Package planner turns an instruction signal into a normalized timeline.
//
// The instruction signal is either literal text (a "text://" prefix) or a
// path to narration audio that must be transcribed first. Generation goes
// through the chat-completion client; when that is unavailable or fails, a
// deterministic fallback plan keeps the pipeline moving.
package planner
