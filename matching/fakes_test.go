package matching

import (
	"context"
	"fmt"
	"sync"
	"time"

	"becayis-backend/models"

	"github.com/google/uuid"
)

// In-memory store fakes. Mutex-guarded so the concurrency tests exercise the
// same single-point-of-mutual-exclusion contract the SQL stores provide.

type fakeRequestStore struct {
	mu       sync.Mutex
	requests map[string]models.ExchangeRequest
}

func newFakeRequestStore(requests ...models.ExchangeRequest) *fakeRequestStore {
	s := &fakeRequestStore{requests: make(map[string]models.ExchangeRequest)}
	for _, r := range requests {
		s.requests[r.Id] = r
	}
	return s
}

func (s *fakeRequestStore) GetRequest(_ context.Context, id string) (*models.ExchangeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: request %s", ErrNotFound, id)
	}
	return &r, nil
}

func (s *fakeRequestStore) ListActiveExcluding(_ context.Context, ownerId string) ([]models.ExchangeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ExchangeRequest
	for _, r := range s.requests {
		if r.Active && r.UserId != ownerId {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeMatchStore struct {
	mu    sync.Mutex
	byKey map[string]*models.Match
	byID  map[string]*models.Match

	// beforeUpdate, when set, runs inside UpdateStatus ahead of the guard;
	// tests use it to lose the race deterministically.
	beforeUpdate func(id string)
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{
		byKey: make(map[string]*models.Match),
		byID:  make(map[string]*models.Match),
	}
}

func (s *fakeMatchStore) FindByID(_ context.Context, id string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, id)
	}
	out := *m
	return &out, nil
}

func (s *fakeMatchStore) FindByPairKey(_ context.Context, key string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byKey[key]
	if !ok {
		return nil, nil
	}
	out := *m
	return &out, nil
}

func (s *fakeMatchStore) CreateIfAbsent(_ context.Context, match *models.Match) (*models.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byKey[match.PairKey]; ok {
		out := *existing
		return &out, false, nil
	}
	stored := *match
	stored.Id = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byKey[stored.PairKey] = &stored
	s.byID[stored.Id] = &stored
	out := stored
	return &out, true, nil
}

func (s *fakeMatchStore) UpdateStatus(_ context.Context, id, expectedStatus, newStatus string, updatedAt time.Time) (*models.Match, error) {
	if s.beforeUpdate != nil {
		s.beforeUpdate(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, id)
	}
	if m.Status != expectedStatus {
		return nil, fmt.Errorf("%w: match %s", ErrConflict, id)
	}
	m.Status = newStatus
	m.UpdatedAt = updatedAt
	out := *m
	return &out, nil
}

func (s *fakeMatchStore) ListByParticipant(_ context.Context, userId string) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var asA, asB []models.Match
	for _, m := range s.byID {
		if m.UserIdA == userId {
			asA = append(asA, *m)
		}
		if m.UserIdB == userId {
			asB = append(asB, *m)
		}
	}
	return append(asA, asB...), nil
}

// setStatus force-writes a status, bypassing the guard.
func (s *fakeMatchStore) setStatus(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.byID[id]; ok {
		m.Status = status
	}
}

type transitionEvent struct {
	match        models.Match
	actingUserId string
}

type fakeNotifier struct {
	mu           sync.Mutex
	created      []models.Match
	transitioned []transitionEvent
}

func (n *fakeNotifier) MatchCreated(_ context.Context, match *models.Match) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, *match)
}

func (n *fakeNotifier) MatchTransitioned(_ context.Context, match *models.Match, actingUserId string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.transitioned = append(n.transitioned, transitionEvent{match: *match, actingUserId: actingUserId})
}

func (n *fakeNotifier) createdCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.created)
}

func (n *fakeNotifier) transitionedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.transitioned)
}
