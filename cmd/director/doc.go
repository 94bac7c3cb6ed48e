// Command director is the CLI for the automated video director: submit jobs,
// run the worker, and inspect the queue.
package main
