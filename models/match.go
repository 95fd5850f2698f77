package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match status values. Pending is assigned at creation; accepted and
// rejected are both terminal.
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusRejected = "rejected"
)

// CriterionScores holds the per-criterion components of a match score,
// each in [0,1].
type CriterionScores struct {
	Location    float64 `json:"location"`
	Institution float64 `json:"institution"`
	Department  float64 `json:"department"`
	Position    float64 `json:"position"`
}

// Match pairs two exchange requests whose compatibility score met the
// qualifying threshold. Rows are append-only history: only Status and
// UpdatedAt ever change after creation, and rows are never deleted.
type Match struct {
	Id         string          `json:"id" gorm:"primaryKey"`
	PairKey    string          `json:"pair_key" gorm:"uniqueIndex;not null"`
	RequestIdA string          `json:"request_id_a" gorm:"not null"`
	RequestIdB string          `json:"request_id_b" gorm:"not null"`
	UserIdA    string          `json:"user_id_a" gorm:"not null;index"`
	UserIdB    string          `json:"user_id_b" gorm:"not null;index"`
	Status     string          `json:"status" gorm:"type:varchar(16);not null"`
	Score      float64         `json:"score"`
	Scores     CriterionScores `json:"scores" gorm:"embedded;embeddedPrefix:score_"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (match *Match) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	match.Id = uuid.NewString()
	return
}

// IsParticipant reports whether userId is one of the two matched users.
func (match *Match) IsParticipant(userId string) bool {
	return userId == match.UserIdA || userId == match.UserIdB
}

// PairKey derives the canonical order-independent key for two request ids.
// Both orderings of the same pair produce the same key, which backs the
// unique index guaranteeing at most one match per pair.
func PairKey(requestIdA, requestIdB string) string {
	if requestIdA > requestIdB {
		requestIdA, requestIdB = requestIdB, requestIdA
	}
	return strings.Join([]string{requestIdA, requestIdB}, ":")
}
