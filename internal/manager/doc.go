// Package manager owns the live suggestion sessions of a process and exposes
// the transport-facing operations on them. It is structured into small files
// by concern:
//
//   - manager.go: core Manager type, session lookup and lifecycle.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - errors.go: error types and helpers (IsTooBusy, IsSessionNotFound).
//   - admission.go: bounded admission of foreground generations.
//   - evict.go: idle-session eviction and its janitor.
//   - ops.go: wire-level operations used by the HTTP and IPC transports.
//   - status_report.go: Status reporting.
//
// Requests without a session id use the shared "default" session, which is
// created on demand and never counts against MaxSessions.
package manager
