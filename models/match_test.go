package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKeyOrderIndependent(t *testing.T) {
	assert.Equal(t, PairKey("r1", "r2"), PairKey("r2", "r1"))
	assert.Equal(t, "r1:r2", PairKey("r2", "r1"))
}

func TestPairKeyDistinctPairs(t *testing.T) {
	assert.NotEqual(t, PairKey("r1", "r2"), PairKey("r1", "r3"))
	assert.NotEqual(t, PairKey("r1", "r2"), PairKey("r2", "r3"))
}

func TestIsParticipant(t *testing.T) {
	m := Match{UserIdA: "userA", UserIdB: "userB"}
	assert.True(t, m.IsParticipant("userA"))
	assert.True(t, m.IsParticipant("userB"))
	assert.False(t, m.IsParticipant("userC"))
	assert.False(t, m.IsParticipant(""))
}
