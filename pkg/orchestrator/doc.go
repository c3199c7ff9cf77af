// Package orchestrator wires the decode → transform → render pipeline for
// scenario pages, providing dependency injection friendly helpers for
// consumers that prefer a single entry point.
package orchestrator
