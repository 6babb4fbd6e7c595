package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/weekwise/weekwise-api/internal/domain"
)

// AnalysisStore is a simple in-memory implementation of
// domain.AnalysisStore. It is NOT persistent and is only suitable for
// development / local mode.
type AnalysisStore struct {
	mu       sync.RWMutex
	records  map[domain.RecordID]*domain.AnalysisRecord
	byUserID map[domain.UserID][]domain.RecordID
}

func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{
		records:  make(map[domain.RecordID]*domain.AnalysisRecord),
		byUserID: make(map[domain.UserID][]domain.RecordID),
	}
}

func (s *AnalysisStore) AppendRecord(ctx context.Context, record *domain.AnalysisRecord) error {
	if record == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = domain.RecordID(uuid.NewString())
	}

	s.records[record.ID] = record
	s.byUserID[record.UserID] = append(s.byUserID[record.UserID], record.ID)

	return nil
}

// ListRecordsByUser returns the last `limit` records for a user in
// append order. If limit <= 0, returns all.
func (s *AnalysisStore) ListRecordsByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUserID[userID]
	if len(ids) == 0 {
		return []*domain.AnalysisRecord{}, nil
	}

	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	selected := ids[len(ids)-limit:]

	out := make([]*domain.AnalysisRecord, 0, len(selected))
	for _, id := range selected {
		if r, ok := s.records[id]; ok {
			out = append(out, r)
		}
	}

	return out, nil
}
