package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/weekwise/weekwise-api/internal/domain"
)

// Store persists analysis records in a single Firestore collection,
// one document per record.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore-backed AnalysisStore for the given
// project (WEEKWISE_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) recordsCol() *firestore.CollectionRef {
	return s.client.Collection("analysis_records")
}

type recordDoc struct {
	UserID       string    `firestore:"user_id"`
	Kind         string    `firestore:"kind"`
	Summary      string    `firestore:"summary"`
	FallbackMode bool      `firestore:"fallback_mode"`
	Payload      string    `firestore:"payload"`
	CreatedAt    time.Time `firestore:"created_at"`
}

func (s *Store) AppendRecord(ctx context.Context, record *domain.AnalysisRecord) error {
	doc := recordDoc{
		UserID:       string(record.UserID),
		Kind:         string(record.Kind),
		Summary:      record.Summary,
		FallbackMode: record.FallbackMode,
		Payload:      string(record.Payload),
		CreatedAt:    record.CreatedAt,
	}

	_, err := s.recordsCol().Doc(string(record.ID)).Create(ctx, doc)
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("firestore AppendRecord: record %s already exists", record.ID)
	}
	if err != nil {
		return fmt.Errorf("firestore AppendRecord: %w", err)
	}
	return nil
}

// ListRecordsByUser returns the user's most recent `limit` records in
// chronological order. limit <= 0 returns all records.
func (s *Store) ListRecordsByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.AnalysisRecord, error) {
	q := s.recordsCol().
		Where("user_id", "==", string(userID)).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.AnalysisRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore ListRecordsByUser: %w", err)
		}

		var doc recordDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("firestore ListRecordsByUser: decoding %s: %w", snap.Ref.ID, err)
		}

		out = append(out, &domain.AnalysisRecord{
			ID:           domain.RecordID(snap.Ref.ID),
			UserID:       domain.UserID(doc.UserID),
			Kind:         domain.AnalysisKind(doc.Kind),
			Summary:      doc.Summary,
			FallbackMode: doc.FallbackMode,
			Payload:      json.RawMessage(doc.Payload),
			CreatedAt:    doc.CreatedAt,
		})
	}

	// Query is newest-first for the limit; flip to chronological.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out, nil
}
