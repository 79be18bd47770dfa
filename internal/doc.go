// Package internal documents the beeps server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, rendering, and routing
// - domain/beeps: the in-memory beep log, payload schema and text policy
// - auth: the shared bearer secret
// - audit, config, metrics, telemetry, validation: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
