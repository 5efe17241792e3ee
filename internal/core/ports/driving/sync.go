package driving

import "context"

// SyncResult summarises one reconciliation run.
type SyncResult struct {
	// Added are the note paths ingested because they exist locally
	// but were not indexed.
	Added []string

	// Removed are the indexed note paths deleted because their local
	// file is gone.
	Removed []string
}

// InSync reports whether the run changed nothing.
func (r SyncResult) InSync() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}

// NoteSyncer reconciles a local notes directory against the notes corpus.
// It is idempotent and safe to run at any time.
type NoteSyncer interface {
	Sync(ctx context.Context) (SyncResult, error)
}
