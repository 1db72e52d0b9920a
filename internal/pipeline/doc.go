// Package pipeline implements the static file request-processing pipeline.
//
// Every request flows through a fixed, ordered sequence of stages
// composed once at startup:
//
//	lookup → cache → content-type → compression → CORS
//	→ access log → error page
//
// The first five stages halt on an unexpected error (the response
// becomes a 500); the access log and error page stages run
// unconditionally, so every response is logged and every 404/5xx body
// is substituted no matter which earlier stage failed.
//
// # Ordering invariants
//
// Cache headers are attached after lookup so they reflect the resolved
// path. Compression runs after content-type resolution (eligibility
// depends on the resolved type) and before CORS and logging (downstream
// stages observe the final byte length). The error page stage runs last
// and preserves headers set by earlier stages.
//
// Stages hold no mutable cross-request state; all per-request state
// lives in the Exchange, which is discarded once the response is
// written.
package pipeline
