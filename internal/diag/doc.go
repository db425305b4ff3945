// Package diag defines the diagnostic model shared by the reorganization passes.
//
// The passes are heuristics: failing to find a destination for a generated
// container, or finding several, is not an error. Such outcomes are reported
// as Info or Warning diagnostics so callers can review them, while the rewrite
// proceeds with the documented policy.
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – position of the node the finding is about, when known.
//   - Subject – name of that node as it appears in the tree.
//   - Notes – optional secondary messages for additional context.
//
// Producers use a Reporter so emission is decoupled from storage; BagReporter
// collects into a Bag which supports sorting and deduplication.
package diag
