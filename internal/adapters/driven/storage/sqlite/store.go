// Package sqlite provides the on-disk corpus store.
//
// All named collections share one SQLite database in the deployment's
// data directory. Vectors are stored as little-endian float32 blobs and
// similarity search is a brute-force cosine scan over the collection;
// corpora here are small enough (one summary plus a few hundred chunks
// per source) that an approximate index would not pay for itself.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/keeper-labs/keeper-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CorpusProvider = (*Store)(nil)

// Store is a SQLite-backed corpus provider. One Store owns one database
// file holding every collection of the deployment.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.keeper/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".keeper", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpus.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Corpus returns the named collection backed by this store.
func (s *Store) Corpus(name string) driven.Corpus {
	return &corpus{store: s, name: name}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g. "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Corpus ====================

// corpus implements driven.Corpus for one named collection.
type corpus struct {
	store *Store
	name  string
}

var _ driven.Corpus = (*corpus)(nil)

// Add inserts records built from four parallel slices under one
// transaction, so a multi-chunk insert is all-or-nothing.
func (c *corpus) Add(ctx context.Context, ids, texts []string, vectors [][]float32, metadatas []domain.Metadata) error {
	n := len(ids)
	if n == 0 || len(texts) != n || len(vectors) != n || len(metadatas) != n {
		return fmt.Errorf("%w: ids=%d texts=%d vectors=%d metadatas=%d",
			domain.ErrInvalidInput, len(ids), len(texts), len(vectors), len(metadatas))
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i := 0; i < n; i++ {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO records (collection, id, text, embedding, source, doc_type)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.name, ids[i], texts[i], float32SliceToBytes(vectors[i]),
			metadatas[i].Source, string(metadatas[i].Type))
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", ids[i], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert: %w", err)
	}
	return nil
}

// Get returns all records whose metadata matches the filter.
func (c *corpus) Get(ctx context.Context, filter domain.Filter) ([]domain.Record, error) {
	query, args := c.selectQuery(filter)
	return c.queryRecords(ctx, query, args...)
}

// SimilaritySearch loads the matching rows and ranks them by cosine
// similarity against the query vector. Rowid order breaks ties, which
// is stable for identical store state.
func (c *corpus) SimilaritySearch(ctx context.Context, vector []float32, k int, filter domain.Filter) ([]domain.Record, error) {
	if k <= 0 {
		return nil, nil
	}

	query, args := c.selectQuery(filter)
	records, err := c.queryRecords(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(records))
	for i := range records {
		scores[i] = cosineSimilarity(vector, records[i].Vector)
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	ranked := make([]domain.Record, 0, k)
	for _, idx := range order[:k] {
		ranked = append(ranked, records[idx])
	}
	return ranked, nil
}

// ContainsText returns records containing the substring.
// instr() is byte-wise, so the match is case-sensitive.
func (c *corpus) ContainsText(ctx context.Context, substring string) ([]domain.Record, error) {
	return c.queryRecords(ctx, `
		SELECT id, text, embedding, source, doc_type
		FROM records
		WHERE collection = ? AND instr(text, ?) > 0
		ORDER BY rowid
	`, c.name, substring)
}

// Delete removes records by id. Unknown ids are a no-op.
func (c *corpus) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, c.name)
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := c.store.db.ExecContext(ctx,
		"DELETE FROM records WHERE collection = ? AND id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}
	return nil
}

// selectQuery builds the filtered select for this collection.
func (c *corpus) selectQuery(filter domain.Filter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT id, text, embedding, source, doc_type FROM records WHERE collection = ?")
	args := []any{c.name}

	if filter.Source != "" {
		sb.WriteString(" AND source = ?")
		args = append(args, filter.Source)
	}
	if filter.Type.Concrete() {
		sb.WriteString(" AND doc_type = ?")
		args = append(args, string(filter.Type))
	}
	sb.WriteString(" ORDER BY rowid")

	return sb.String(), args
}

// queryRecords runs a select and scans the rows into records.
func (c *corpus) queryRecords(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := c.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		var embeddingBlob []byte
		var docType string
		if err := rows.Scan(&rec.ID, &rec.Text, &embeddingBlob, &rec.Metadata.Source, &docType); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Vector = bytesToFloat32Slice(embeddingBlob)
		rec.Metadata.Type = domain.DocType(docType)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// ==================== Helpers ====================

// float32SliceToBytes converts a vector to a little-endian byte blob.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte blob back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
