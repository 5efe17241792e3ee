package domain

// PathStatus describes the outcome of a batch operation for one path.
type PathStatus string

const (
	// PathIngested means the path was loaded, summarised and stored.
	PathIngested PathStatus = "ingested"

	// PathSkipped means the path was already present and left untouched.
	PathSkipped PathStatus = "skipped"

	// PathDeleted means the path's summary and chunks were removed.
	PathDeleted PathStatus = "deleted"

	// PathNotFound means no records matched the path.
	PathNotFound PathStatus = "not found"

	// PathFailed means the path errored; siblings are unaffected.
	PathFailed PathStatus = "failed"
)

// PathReport is the per-path outcome of a batch ingest or delete.
// Business-level failures are reported here rather than raised, so a
// batch call always runs to completion.
type PathReport struct {
	Path   string
	Status PathStatus

	// Err carries the cause when Status is PathFailed.
	Err error
}

// Failed reports whether the path errored.
func (r PathReport) Failed() bool {
	return r.Status == PathFailed
}
