// Package validation evaluates field answers against their rules. Every
// function is pure: results depend only on the arguments and a failed check
// is reported as a value, never as an error.
package validation
