// Package driving provides interfaces for user-facing entry points
// (primary/inbound ports).
//
// The CLI adapter calls these interfaces; internal/core/services
// implements them.
package driving
