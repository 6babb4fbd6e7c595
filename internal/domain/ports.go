package domain

import "context"

// TextGenerator is the single seam to the external text-generation
// service. Every analysis component consumes this interface and nothing
// else, so any backend (or a deterministic stub in tests) can be
// substituted without touching the analysis code.
//
// Failures are reported as *GenerationError. Timeouts and retries are
// the implementation's concern; callers only see success or failure.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// AnalysisStore persists analysis records per user.
//
// ListRecordsByUser returns the user's most recent `limit` records in
// chronological order; limit <= 0 means no limit. All implementations
// follow this contract.
type AnalysisStore interface {
	AppendRecord(ctx context.Context, record *AnalysisRecord) error
	ListRecordsByUser(ctx context.Context, userID UserID, limit int) ([]*AnalysisRecord, error)
}
