package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/keeper-labs/keeper-cli/internal/core/ports/driving"
	"github.com/keeper-labs/keeper-cli/internal/logger"
)

// syncDebounce batches rapid note edits into one reconciliation run.
const syncDebounce = 500 * time.Millisecond

var notesWatch bool

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage note synchronisation",
}

var notesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the notes directory with the index",
	Long: `Brings the index in line with the notes directory: notes deleted on
disk are removed from the index, new notes are ingested.

With --watch, keeps running and re-syncs whenever note files change.`,
	RunE: runNotesSync,
}

func init() {
	notesSyncCmd.Flags().BoolVarP(&notesWatch, "watch", "w", false, "keep watching the notes directory")
	notesCmd.AddCommand(notesSyncCmd)
	rootCmd.AddCommand(notesCmd)
}

func runNotesSync(cmd *cobra.Command, _ []string) error {
	if noteSyncer == nil {
		return errors.New("note syncer not configured")
	}

	if err := syncOnce(cmd.Context(), cmd); err != nil {
		return err
	}

	if !notesWatch {
		return nil
	}
	return watchNotes(cmd)
}

func syncOnce(ctx context.Context, cmd *cobra.Command) error {
	result, err := noteSyncer.Sync(ctx)
	if err != nil {
		return err
	}
	printSyncResult(cmd, result)
	return nil
}

func printSyncResult(cmd *cobra.Command, result driving.SyncResult) {
	if result.InSync() {
		cmd.Println("Notes are in sync.")
		return
	}
	for _, path := range result.Added {
		cmd.Printf("  added    %s\n", path)
	}
	for _, path := range result.Removed {
		cmd.Printf("  removed  %s\n", path)
	}
}

// watchNotes blocks, re-running the syncer whenever note files change.
// Events are debounced because editors typically fire several per save.
func watchNotes(cmd *cobra.Command) error {
	notesDir := configStore.GetString("notes.dir")
	if notesDir == "" {
		return errors.New("notes.dir is not configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(notesDir); err != nil {
		return err
	}
	cmd.Printf("Watching %s for changes...\n", notesDir)

	ctx := cmd.Context()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isNoteEvent(event) {
				logger.Debug("Note change: %s %s", event.Op, event.Name)
				pending = time.After(syncDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-pending:
			pending = nil
			if err := syncOnce(ctx, cmd); err != nil {
				logger.Warn("Sync failed: %v", err)
			}
		}
	}
}

// isNoteEvent reports whether the event concerns a note file.
func isNoteEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return ext == ".md" || ext == ".txt"
}
