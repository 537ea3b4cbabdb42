package mocks

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// MockEnricher is a mock implementation of Enricher for testing
type MockEnricher struct {
	Classification *domain.Classification
	Summary        string
	Clauses        []domain.Clause

	FailClassify error
	FailSummary  error
	FailClauses  error

	// Call counters
	ClassifyCalls int
	SummaryCalls  int
	ClauseCalls   int
}

// NewMockEnricher creates a MockEnricher with sensible defaults
func NewMockEnricher() *MockEnricher {
	return &MockEnricher{
		Classification: &domain.Classification{
			DocumentType: domain.DocumentTypeContract,
			Confidence:   0.92,
		},
		Summary: "mock summary",
		Clauses: []domain.Clause{
			{
				Title:        "Confidentiality",
				Description:  "Parties keep terms confidential.",
				OriginalText: "Each party shall keep the terms confidential.",
				Risk:         domain.RiskMedium,
				Section:      "Section 4.1",
				Confidence:   0.81,
			},
		},
	}
}

func (m *MockEnricher) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	m.ClassifyCalls++
	if m.FailClassify != nil {
		return nil, m.FailClassify
	}
	return m.Classification, nil
}

func (m *MockEnricher) Summarize(ctx context.Context, text string) (string, error) {
	m.SummaryCalls++
	if m.FailSummary != nil {
		return "", m.FailSummary
	}
	return m.Summary, nil
}

func (m *MockEnricher) ExtractClauses(ctx context.Context, text string) ([]domain.Clause, error) {
	m.ClauseCalls++
	if m.FailClauses != nil {
		return nil, m.FailClauses
	}
	return m.Clauses, nil
}
