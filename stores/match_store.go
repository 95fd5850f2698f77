package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"becayis-backend/matching"
	"becayis-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchStore is the gorm-backed matching.MatchStore. The unique index on
// pair_key and the conditional status UPDATE carry the concurrency
// guarantees; no in-process locking.
type MatchStore struct {
	db *gorm.DB
}

func NewMatchStore(db *gorm.DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) FindByID(ctx context.Context, id string) (*models.Match, error) {
	var match models.Match
	if err := s.db.WithContext(ctx).First(&match, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: match %s", matching.ErrNotFound, id)
		}
		return nil, err
	}
	return &match, nil
}

func (s *MatchStore) FindByPairKey(ctx context.Context, key string) (*models.Match, error) {
	var match models.Match
	if err := s.db.WithContext(ctx).First(&match, "pair_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

// CreateIfAbsent inserts with ON CONFLICT (pair_key) DO NOTHING. When the
// insert is skipped a concurrent or earlier run already owns the pair, so
// the stored row is re-read and returned untouched.
func (s *MatchStore) CreateIfAbsent(ctx context.Context, match *models.Match) (*models.Match, bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_key"}},
			DoNothing: true,
		}).
		Create(match)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return match, true, nil
	}

	existing, err := s.FindByPairKey(ctx, match.PairKey)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Matches are never deleted, so a skipped insert must have a row.
		return nil, false, fmt.Errorf("match for pair %s missing after conflicting insert", match.PairKey)
	}
	return existing, false, nil
}

// UpdateStatus performs the optimistic write: the row changes only if its
// status still equals expectedStatus. Zero rows affected means either the
// match is gone (ErrNotFound) or another writer won (ErrConflict).
func (s *MatchStore) UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string, updatedAt time.Time) (*models.Match, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ? AND status = ?", id, expectedStatus).
		Updates(map[string]any{"status": newStatus, "updated_at": updatedAt})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: match %s", matching.ErrConflict, id)
	}
	return s.FindByID(ctx, id)
}

// ListByParticipant runs one query per side and concatenates; the caller
// (Lifecycle) deduplicates by match id.
func (s *MatchStore) ListByParticipant(ctx context.Context, userId string) ([]models.Match, error) {
	var asA, asB []models.Match
	if err := s.db.WithContext(ctx).Where("user_id_a = ?", userId).Find(&asA).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("user_id_b = ?", userId).Find(&asB).Error; err != nil {
		return nil, err
	}
	return append(asA, asB...), nil
}
