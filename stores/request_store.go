package stores

import (
	"context"
	"errors"
	"fmt"

	"becayis-backend/matching"
	"becayis-backend/models"

	"gorm.io/gorm"
)

// RequestStore is the gorm-backed matching.RequestStore.
type RequestStore struct {
	db *gorm.DB
}

func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{db: db}
}

func (s *RequestStore) GetRequest(ctx context.Context, id string) (*models.ExchangeRequest, error) {
	var request models.ExchangeRequest
	if err := s.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: request %s", matching.ErrNotFound, id)
		}
		return nil, err
	}
	return &request, nil
}

func (s *RequestStore) ListActiveExcluding(ctx context.Context, ownerId string) ([]models.ExchangeRequest, error) {
	var requests []models.ExchangeRequest
	err := s.db.WithContext(ctx).
		Where("active = ? AND user_id <> ?", true, ownerId).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
