// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// These are the capabilities the core requires but does not implement:
// the persistent collection store, text extraction from source formats,
// tokenisation, embedding, and answer generation. Adapters under
// internal/adapters/driven implement them; services depend only on the
// interfaces defined here.
package driven
