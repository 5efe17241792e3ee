package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driving"
	"github.com/keeper-labs/keeper-cli/internal/logger"
)

// Ensure NoteSyncService implements the interface.
var _ driving.NoteSyncer = (*NoteSyncService)(nil)

// noteExtensions are the file extensions treated as notes.
var noteExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// NoteSyncService reconciles a local notes directory against the notes
// corpus by set difference: indexed paths without a local file are
// deleted, local files not yet indexed are ingested. Running it on an
// already consistent state touches nothing.
type NoteSyncService struct {
	notesDir  string
	knowledge driving.KnowledgeService
}

// NewNoteSyncService creates a syncer for the given notes directory.
func NewNoteSyncService(notesDir string, knowledge driving.KnowledgeService) *NoteSyncService {
	return &NoteSyncService{
		notesDir:  notesDir,
		knowledge: knowledge,
	}
}

// Sync runs one reconciliation pass.
func (s *NoteSyncService) Sync(ctx context.Context) (driving.SyncResult, error) {
	logger.Section("Note Sync")
	logger.Debug("Notes directory: %s", s.notesDir)

	local, err := s.localNotes()
	if err != nil {
		return driving.SyncResult{}, err
	}
	logger.Debug("Local notes: %d", len(local))

	indexed, err := s.knowledge.List(ctx, domain.DocTypeNote)
	if err != nil {
		return driving.SyncResult{}, fmt.Errorf("list indexed notes: %w", err)
	}
	logger.Debug("Indexed notes: %d", len(indexed))

	toRemove := make([]string, 0)
	for _, path := range indexed {
		if !local[path] {
			toRemove = append(toRemove, path)
		}
	}

	indexedSet := make(map[string]bool, len(indexed))
	for _, path := range indexed {
		indexedSet[path] = true
	}
	toAdd := make([]string, 0)
	for path := range local {
		if !indexedSet[path] {
			toAdd = append(toAdd, path)
		}
	}
	sort.Strings(toAdd)
	sort.Strings(toRemove)

	var result driving.SyncResult

	if len(toRemove) > 0 {
		reports, err := s.knowledge.Delete(ctx, toRemove, domain.DocTypeNote)
		if err != nil {
			return result, fmt.Errorf("delete stale notes: %w", err)
		}
		for _, report := range reports {
			if report.Status == domain.PathDeleted {
				result.Removed = append(result.Removed, report.Path)
			}
		}
	}

	if len(toAdd) > 0 {
		reports, err := s.knowledge.Ingest(ctx, toAdd, domain.DocTypeNote)
		if err != nil {
			return result, fmt.Errorf("ingest new notes: %w", err)
		}
		for _, report := range reports {
			if report.Status == domain.PathIngested {
				result.Added = append(result.Added, report.Path)
			}
		}
	}

	if result.InSync() {
		logger.Info("Notes already in sync")
	} else {
		logger.Info("Note sync: %d added, %d removed", len(result.Added), len(result.Removed))
	}

	return result, nil
}

// localNotes enumerates note files in the directory, keyed by full path.
// A missing directory counts as an empty set so sync still converges.
func (s *NoteSyncService) localNotes() (map[string]bool, error) {
	entries, err := os.ReadDir(s.notesDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Notes directory does not exist")
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("read notes directory: %w", err)
	}

	local := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !noteExtensions[ext] {
			continue
		}
		local[filepath.Join(s.notesDir, entry.Name())] = true
	}

	return local, nil
}
