package matching

import (
	"context"
	"time"

	"becayis-backend/models"
)

// RequestStore is the read side of the exchange-request pool.
type RequestStore interface {
	// GetRequest returns the request with the given id, or ErrNotFound.
	GetRequest(ctx context.Context, id string) (*models.ExchangeRequest, error)

	// ListActiveExcluding returns every active request whose owner is not
	// ownerId. Order is unspecified.
	ListActiveExcluding(ctx context.Context, ownerId string) ([]models.ExchangeRequest, error)
}

// MatchStore persists match records. CreateIfAbsent and UpdateStatus are the
// two points of mutual exclusion for concurrent callers: the former through
// the unique pair-key index, the latter through a conditional write on the
// previously observed status.
type MatchStore interface {
	// FindByID returns the match with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.Match, error)

	// FindByPairKey returns the match for the given pair key, or nil when
	// no such match exists.
	FindByPairKey(ctx context.Context, key string) (*models.Match, error)

	// CreateIfAbsent persists match unless a record with the same pair key
	// already exists, in which case the existing record is returned
	// untouched. The second result reports whether a new row was created.
	CreateIfAbsent(ctx context.Context, match *models.Match) (*models.Match, bool, error)

	// UpdateStatus sets status and updated_at on the match iff its current
	// status still equals expectedStatus. Returns ErrConflict when the
	// guard fails, ErrNotFound when the id is unknown.
	UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string, updatedAt time.Time) (*models.Match, error)

	// ListByParticipant returns matches where userId appears on either side.
	ListByParticipant(ctx context.Context, userId string) ([]models.Match, error)
}

// Notifier consumes match events. Best effort: implementations must absorb
// their own failures; the core never checks an outcome.
type Notifier interface {
	// MatchCreated announces a new match to both participants.
	MatchCreated(ctx context.Context, match *models.Match)

	// MatchTransitioned announces a status change to the participant who
	// did NOT act; the acting user already knows.
	MatchTransitioned(ctx context.Context, match *models.Match, actingUserId string)
}
