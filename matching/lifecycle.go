package matching

import (
	"context"
	"fmt"
	"time"

	"becayis-backend/models"

	"go.uber.org/zap"
)

// Lifecycle drives a match through its status state machine:
// pending -> accepted | rejected, both terminal.
type Lifecycle struct {
	matches  MatchStore
	notifier Notifier
	log      *zap.Logger
}

func NewLifecycle(matches MatchStore, notifier Notifier, log *zap.Logger) *Lifecycle {
	return &Lifecycle{matches: matches, notifier: notifier, log: log}
}

// Transition moves matchId from pending to target on behalf of actingUserId.
// The write is conditional on the status still being pending at write time;
// a lost race surfaces as ErrConflict with nothing written, so of two racing
// participants exactly one succeeds.
func (l *Lifecycle) Transition(ctx context.Context, matchId, actingUserId, target string) (*models.Match, error) {
	if target != models.MatchStatusAccepted && target != models.MatchStatusRejected {
		return nil, fmt.Errorf("%w: target status %q", ErrValidation, target)
	}

	match, err := l.matches.FindByID(ctx, matchId)
	if err != nil {
		return nil, err
	}
	if !match.IsParticipant(actingUserId) {
		return nil, fmt.Errorf("%w: user %s on match %s", ErrPermission, actingUserId, matchId)
	}
	if match.Status != models.MatchStatusPending {
		return nil, fmt.Errorf("%w: match %s is already %s", ErrInvalidTransition, matchId, match.Status)
	}

	updated, err := l.matches.UpdateStatus(ctx, matchId, models.MatchStatusPending, target, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	l.log.Info("match transitioned",
		zap.String("matchId", updated.Id),
		zap.String("status", updated.Status),
		zap.String("actingUserId", actingUserId))
	l.notifier.MatchTransitioned(ctx, updated, actingUserId)

	return updated, nil
}

// ListMatchesForUser returns every match the user participates in, on either
// side, without duplicates.
func (l *Lifecycle) ListMatchesForUser(ctx context.Context, userId string) ([]models.Match, error) {
	matches, err := l.matches.ListByParticipant(ctx, userId)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, match := range matches {
		if _, ok := seen[match.Id]; ok {
			continue
		}
		seen[match.Id] = struct{}{}
		out = append(out, match)
	}
	return out, nil
}
