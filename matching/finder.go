package matching

import (
	"context"
	"fmt"
	"sort"

	"becayis-backend/models"

	"go.uber.org/zap"
)

// Finder scans the active request pool for a triggering request, scores each
// candidate, and persists one pending match per qualifying pair. Creation is
// idempotent on the pair key, so concurrent runs that discover the same pair
// converge to a single stored match.
type Finder struct {
	requests RequestStore
	matches  MatchStore
	notifier Notifier
	log      *zap.Logger
}

func NewFinder(requests RequestStore, matches MatchStore, notifier Notifier, log *zap.Logger) *Finder {
	return &Finder{requests: requests, matches: matches, notifier: notifier, log: log}
}

type scoredCandidate struct {
	request models.ExchangeRequest
	scores  models.CriterionScores
	total   float64
}

// FindAndCreateMatches scores requestId against all other owners' active
// requests and persists matches for every candidate at or above the
// threshold, ordered by descending score (ties by ascending candidate id).
// Pre-existing matches for a pair are returned unchanged and not re-notified.
//
// Cancelling ctx stops candidate processing; matches already persisted are
// not rolled back.
func (f *Finder) FindAndCreateMatches(ctx context.Context, requestId string) ([]models.Match, error) {
	request, err := f.requests.GetRequest(ctx, requestId)
	if err != nil {
		return nil, err
	}
	// The store should never hand out an active request without targets,
	// but a bad row here would silently score every candidate at zero.
	if request.Active && len(request.TargetLocations) == 0 {
		return nil, fmt.Errorf("%w: active request %s has no target locations", ErrValidation, requestId)
	}

	candidates, err := f.requests.ListActiveExcluding(ctx, request.UserId)
	if err != nil {
		return nil, err
	}

	var qualifying []scoredCandidate
	for _, candidate := range candidates {
		scores, total := ScorePair(request, &candidate)
		if !Qualifies(total) {
			continue
		}
		qualifying = append(qualifying, scoredCandidate{request: candidate, scores: scores, total: total})
	}

	// Deterministic order: best score first, candidate id breaks ties.
	sort.Slice(qualifying, func(i, j int) bool {
		if qualifying[i].total != qualifying[j].total {
			return qualifying[i].total > qualifying[j].total
		}
		return qualifying[i].request.Id < qualifying[j].request.Id
	})

	results := make([]models.Match, 0, len(qualifying))
	for _, candidate := range qualifying {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		match := &models.Match{
			PairKey:    models.PairKey(request.Id, candidate.request.Id),
			RequestIdA: request.Id,
			RequestIdB: candidate.request.Id,
			UserIdA:    request.UserId,
			UserIdB:    candidate.request.UserId,
			Status:     models.MatchStatusPending,
			Score:      candidate.total,
			Scores:     candidate.scores,
		}

		stored, created, err := f.matches.CreateIfAbsent(ctx, match)
		if err != nil {
			return results, err
		}
		if created {
			f.log.Info("match created",
				zap.String("matchId", stored.Id),
				zap.String("pairKey", stored.PairKey),
				zap.Float64("score", stored.Score))
			f.notifier.MatchCreated(ctx, stored)
		}
		results = append(results, *stored)
	}

	return results, nil
}
