package matching

import (
	"context"
	"errors"
	"sync"
	"testing"

	"becayis-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLifecycle(t *testing.T) (*Lifecycle, *fakeMatchStore, *fakeNotifier, *models.Match) {
	t.Helper()
	matches := newFakeMatchStore()
	notifier := &fakeNotifier{}
	lifecycle := NewLifecycle(matches, notifier, zap.NewNop())

	seed := &models.Match{
		PairKey:    models.PairKey("r1", "r2"),
		RequestIdA: "r1",
		RequestIdB: "r2",
		UserIdA:    "userA",
		UserIdB:    "userB",
		Status:     models.MatchStatusPending,
		Score:      1.0,
	}
	stored, created, err := matches.CreateIfAbsent(context.Background(), seed)
	require.NoError(t, err)
	require.True(t, created)
	return lifecycle, matches, notifier, stored
}

func TestTransitionAccept(t *testing.T) {
	lifecycle, _, notifier, seed := newTestLifecycle(t)

	got, err := lifecycle.Transition(context.Background(), seed.Id, "userA", models.MatchStatusAccepted)

	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusAccepted, got.Status)
	assert.True(t, got.UpdatedAt.After(seed.UpdatedAt) || got.UpdatedAt.Equal(seed.UpdatedAt))
	require.Equal(t, 1, notifier.transitionedCount())
	assert.Equal(t, "userA", notifier.transitioned[0].actingUserId)
}

// Either participant may act, including the B side.
func TestTransitionRejectByCounterpart(t *testing.T) {
	lifecycle, _, _, seed := newTestLifecycle(t)

	got, err := lifecycle.Transition(context.Background(), seed.Id, "userB", models.MatchStatusRejected)

	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusRejected, got.Status)
}

func TestTransitionTerminalStateIsFinal(t *testing.T) {
	lifecycle, matches, notifier, seed := newTestLifecycle(t)

	_, err := lifecycle.Transition(context.Background(), seed.Id, "userA", models.MatchStatusAccepted)
	require.NoError(t, err)

	_, err = lifecycle.Transition(context.Background(), seed.Id, "userB", models.MatchStatusRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	current, ferr := matches.FindByID(context.Background(), seed.Id)
	require.NoError(t, ferr)
	assert.Equal(t, models.MatchStatusAccepted, current.Status)
	assert.Equal(t, 1, notifier.transitionedCount())
}

func TestTransitionNonParticipant(t *testing.T) {
	lifecycle, matches, notifier, seed := newTestLifecycle(t)

	_, err := lifecycle.Transition(context.Background(), seed.Id, "userC", models.MatchStatusAccepted)

	assert.ErrorIs(t, err, ErrPermission)
	current, ferr := matches.FindByID(context.Background(), seed.Id)
	require.NoError(t, ferr)
	assert.Equal(t, models.MatchStatusPending, current.Status)
	assert.Equal(t, 0, notifier.transitionedCount())
}

func TestTransitionInvalidTarget(t *testing.T) {
	lifecycle, _, _, seed := newTestLifecycle(t)

	for _, target := range []string{"", models.MatchStatusPending, "cancelled"} {
		_, err := lifecycle.Transition(context.Background(), seed.Id, "userA", target)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestTransitionUnknownMatch(t *testing.T) {
	lifecycle, _, _, _ := newTestLifecycle(t)

	_, err := lifecycle.Transition(context.Background(), "missing", "userA", models.MatchStatusAccepted)

	assert.ErrorIs(t, err, ErrNotFound)
}

// A writer that sneaks in between the read and the conditional write
// surfaces as ErrConflict, with the sneaked-in status left intact.
func TestTransitionConflict(t *testing.T) {
	lifecycle, matches, notifier, seed := newTestLifecycle(t)

	raced := false
	matches.beforeUpdate = func(id string) {
		if !raced {
			raced = true
			matches.setStatus(id, models.MatchStatusRejected)
		}
	}

	_, err := lifecycle.Transition(context.Background(), seed.Id, "userA", models.MatchStatusAccepted)

	assert.ErrorIs(t, err, ErrConflict)
	current, ferr := matches.FindByID(context.Background(), seed.Id)
	require.NoError(t, ferr)
	assert.Equal(t, models.MatchStatusRejected, current.Status)
	assert.Equal(t, 0, notifier.transitionedCount())
}

// Two racing participants: exactly one wins, the other sees ErrConflict or
// ErrInvalidTransition depending on where its read landed.
func TestTransitionRace(t *testing.T) {
	lifecycle, matches, _, seed := newTestLifecycle(t)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, attempt := range []struct {
		user   string
		target string
	}{
		{"userA", models.MatchStatusAccepted},
		{"userB", models.MatchStatusRejected},
	} {
		wg.Add(1)
		go func(i int, user, target string) {
			defer wg.Done()
			_, errs[i] = lifecycle.Transition(context.Background(), seed.Id, user, target)
		}(i, attempt.user, attempt.target)
	}
	wg.Wait()

	var successes, failures int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		failures++
		assert.True(t, errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidTransition),
			"unexpected race error: %v", err)
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)

	current, err := matches.FindByID(context.Background(), seed.Id)
	require.NoError(t, err)
	assert.NotEqual(t, models.MatchStatusPending, current.Status)
}

// dupListStore feeds duplicate rows to exercise the union-by-id dedupe.
type dupListStore struct {
	*fakeMatchStore
}

func (d dupListStore) ListByParticipant(ctx context.Context, userId string) ([]models.Match, error) {
	matches, err := d.fakeMatchStore.ListByParticipant(ctx, userId)
	if err != nil {
		return nil, err
	}
	return append(matches, matches...), nil
}

func TestListMatchesForUserDeduplicates(t *testing.T) {
	matches := newFakeMatchStore()
	notifier := &fakeNotifier{}

	_, _, err := matches.CreateIfAbsent(context.Background(), &models.Match{
		PairKey: models.PairKey("r1", "r2"),
		UserIdA: "userA", UserIdB: "userB",
		RequestIdA: "r1", RequestIdB: "r2",
		Status: models.MatchStatusPending,
	})
	require.NoError(t, err)
	_, _, err = matches.CreateIfAbsent(context.Background(), &models.Match{
		PairKey: models.PairKey("r1", "r3"),
		UserIdA: "userA", UserIdB: "userC",
		RequestIdA: "r1", RequestIdB: "r3",
		Status: models.MatchStatusPending,
	})
	require.NoError(t, err)

	lifecycle := NewLifecycle(dupListStore{matches}, notifier, zap.NewNop())

	got, err := lifecycle.ListMatchesForUser(context.Background(), "userA")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	seen := map[string]bool{}
	for _, m := range got {
		assert.False(t, seen[m.Id], "duplicate match %s", m.Id)
		seen[m.Id] = true
	}
}

func TestListMatchesForUserCoversBothSides(t *testing.T) {
	matches := newFakeMatchStore()
	lifecycle := NewLifecycle(matches, &fakeNotifier{}, zap.NewNop())

	_, _, err := matches.CreateIfAbsent(context.Background(), &models.Match{
		PairKey: models.PairKey("r1", "r2"),
		UserIdA: "userA", UserIdB: "userB",
		RequestIdA: "r1", RequestIdB: "r2",
		Status: models.MatchStatusPending,
	})
	require.NoError(t, err)
	_, _, err = matches.CreateIfAbsent(context.Background(), &models.Match{
		PairKey: models.PairKey("r3", "r4"),
		UserIdA: "userC", UserIdB: "userA",
		RequestIdA: "r3", RequestIdB: "r4",
		Status: models.MatchStatusPending,
	})
	require.NoError(t, err)

	got, err := lifecycle.ListMatchesForUser(context.Background(), "userA")

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
