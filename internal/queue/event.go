// Package queue defines message payloads exchanged over the message broker.
package queue

// cleanupQueueName is the durable queue carrying export cleanup events.
const cleanupQueueName = "export.cleanup"

// ExportCreatedEvent is published after a CSV export file has been
// written and served. The consumer deletes the file once ExpiresAt has
// passed. Cleanup is best-effort: a lost event only leaves a stale file
// on disk, never incorrect data.
type ExportCreatedEvent struct {
	Path      string `json:"path"`       // absolute or workdir-relative file path
	ManagerID uint64 `json:"manager_id"` // manager who requested the export
	CreatedAt string `json:"created_at"` // RFC3339
	ExpiresAt string `json:"expires_at"` // RFC3339; delete after this instant
}
