package mcp

import (
	"context"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
// It records the arguments of the last query call.
type mockKnowledgeService struct {
	paths    []string
	records  []domain.Record
	snippets []string
	content  domain.Content
	exists   bool
	err      error

	lastQuery   string
	lastKeyword string
	lastType    domain.DocType
}

func (m *mockKnowledgeService) List(_ context.Context, docType domain.DocType) ([]string, error) {
	m.lastType = docType
	return m.paths, m.err
}

func (m *mockKnowledgeService) Exists(_ context.Context, _ string, _ domain.DocType) (bool, error) {
	return m.exists, m.err
}

func (m *mockKnowledgeService) Ingest(_ context.Context, _ []string, _ domain.DocType) ([]domain.PathReport, error) {
	return nil, m.err
}

func (m *mockKnowledgeService) Delete(_ context.Context, _ []string, _ domain.DocType) ([]domain.PathReport, error) {
	return nil, m.err
}

func (m *mockKnowledgeService) Query(_ context.Context, query string, docType domain.DocType) ([]domain.Record, error) {
	m.lastQuery = query
	m.lastType = docType
	return m.records, m.err
}

func (m *mockKnowledgeService) GetContent(_ context.Context, _ string, _ domain.DocType) (domain.Content, error) {
	return m.content, m.err
}

func (m *mockKnowledgeService) KeywordSearch(_ context.Context, keyword string, docType domain.DocType) ([]string, error) {
	m.lastKeyword = keyword
	m.lastType = docType
	return m.snippets, m.err
}
