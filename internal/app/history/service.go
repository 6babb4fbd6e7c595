package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/weekwise/weekwise-api/internal/domain"
)

// Service records finished analyses so users can review them later.
// Recording is strictly best-effort from the API's point of view: a
// storage failure never fails the analysis response.
type Service struct {
	store domain.AnalysisStore
	now   func() time.Time
}

// NewService creates a history service. A nil store disables history
// without erroring, which keeps local setups working before a backend
// is configured.
func NewService(store domain.AnalysisStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Record persists one analysis result for a user. The payload is
// serialized as JSON so the store stays ignorant of result shapes.
func (s *Service) Record(
	ctx context.Context,
	userID domain.UserID,
	kind domain.AnalysisKind,
	summary string,
	fallbackMode bool,
	payload any,
) error {
	if s.store == nil || userID == "" {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("history: marshaling %s payload: %w", kind, err)
	}

	record := &domain.AnalysisRecord{
		ID:           domain.RecordID(uuid.NewString()),
		UserID:       userID,
		Kind:         kind,
		Summary:      summary,
		FallbackMode: fallbackMode,
		Payload:      raw,
		CreatedAt:    s.now(),
	}

	if err := s.store.AppendRecord(ctx, record); err != nil {
		return fmt.Errorf("history: append failed: %w", err)
	}
	return nil
}

// ListByUser returns the last `limit` records for a user, most recent
// last. If limit <= 0, a reasonable default is used.
func (s *Service) ListByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.AnalysisRecord, error) {
	if s.store == nil {
		return []*domain.AnalysisRecord{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.ListRecordsByUser(ctx, userID, limit)
}
