// Package diag defines the diagnostic model shared by the tokenizer and the
// script interpreter.
//
// # Purpose
//
//   - Provide deterministic, serialisable records of what went wrong while a
//     linker script was read.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag performs no formatting and no IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – human oriented text naming the offending token, keyword or path.
//   - Primary span – the source.Span pointing at the issue.
//   - Notes – optional secondary spans, e.g. the INCLUDE that pulled a file in.
//
// The interpreter reports at most one error per script: the first one wins
// and everything after it is suppressed at the source, not filtered here.
package diag
