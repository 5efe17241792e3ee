package cli

import (
	"bytes"
	"context"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driving"
)

// mockKnowledge is a canned driving.KnowledgeService for command tests.
type mockKnowledge struct {
	paths    []string
	records  []domain.Record
	snippets []string
	content  domain.Content
	reports  []domain.PathReport
	exists   bool
	err      error

	lastPaths []string
	lastType  domain.DocType
}

func (m *mockKnowledge) List(_ context.Context, docType domain.DocType) ([]string, error) {
	m.lastType = docType
	return m.paths, m.err
}

func (m *mockKnowledge) Exists(_ context.Context, _ string, _ domain.DocType) (bool, error) {
	return m.exists, m.err
}

func (m *mockKnowledge) Ingest(_ context.Context, paths []string, docType domain.DocType) ([]domain.PathReport, error) {
	m.lastPaths = paths
	m.lastType = docType
	return m.reports, m.err
}

func (m *mockKnowledge) Delete(_ context.Context, paths []string, docType domain.DocType) ([]domain.PathReport, error) {
	m.lastPaths = paths
	m.lastType = docType
	return m.reports, m.err
}

func (m *mockKnowledge) Query(_ context.Context, _ string, docType domain.DocType) ([]domain.Record, error) {
	m.lastType = docType
	return m.records, m.err
}

func (m *mockKnowledge) GetContent(_ context.Context, _ string, _ domain.DocType) (domain.Content, error) {
	return m.content, m.err
}

func (m *mockKnowledge) KeywordSearch(_ context.Context, _ string, docType domain.DocType) ([]string, error) {
	m.lastType = docType
	return m.snippets, m.err
}

// mockNoteSyncer is a canned driving.NoteSyncer.
type mockNoteSyncer struct {
	result driving.SyncResult
	err    error
	runs   int
}

func (m *mockNoteSyncer) Sync(_ context.Context) (driving.SyncResult, error) {
	m.runs++
	return m.result, m.err
}

// setupTestServices installs mocks and returns them with a cleanup func.
func setupTestServices() (*mockKnowledge, *mockNoteSyncer, func()) {
	knowledge := &mockKnowledge{}
	syncer := &mockNoteSyncer{}
	SetServices(Services{Knowledge: knowledge, NoteSync: syncer})

	return knowledge, syncer, func() {
		SetServices(Services{})
		rootCmd.SetArgs(nil)
	}
}

// execute runs the root command with args and captures its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
