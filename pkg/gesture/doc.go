// Package gesture turns pointer trajectories into browser actions.
//
// The pipeline runs synchronously inside the host's pointer callbacks:
//
//	pointer-down -> policy gate -> Session (snapshot of Config)
//	pointer-move -> Sampler -> Classifier -> Accumulator
//	pointer-up   -> Normalize -> Resolve -> types.ActionRequest
//
// Engine owns the active configuration and at most one Session. A
// configuration update that arrives while a session is tracking is queued
// and applied when the session ends, so a gesture always finishes under the
// settings it started with.
package gesture
