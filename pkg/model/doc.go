// Package model defines the server-driven scenario page consumed by the
// projector and the renderers. A Page is an ordered list of stages (text,
// image, button, field); field stages embed a FieldRule describing the
// required flag and the full-match pattern an answer must satisfy. Stage and
// Action are closed unions: only the variants declared here satisfy them, so
// consumers can switch over every case and treat anything else as a bug.
//
// Values in this package are immutable once constructed. Answers are the one
// exception: they belong to the transient state of a single screen and are
// replaced, never mutated, on every edit.
package model
