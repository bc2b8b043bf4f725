package types

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveState(t *testing.T) {
	deadline := time.Unix(1_700_000_000, 0)

	cases := []struct {
		name     string
		now      time.Time
		executed bool
		want     ProposalState
	}{
		{"before deadline", deadline.Add(-time.Second), false, ProposalStateOpen},
		{"at deadline", deadline, false, ProposalStateExecutionPending},
		{"after deadline", deadline.Add(time.Second), false, ProposalStateExecutionPending},
		{"executed before deadline", deadline.Add(-time.Hour), true, ProposalStateClosed},
		{"executed after deadline", deadline.Add(time.Hour), true, ProposalStateClosed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DeriveState(deadline, c.executed, c.now))
		})
	}
}

func TestOutcomeLabel(t *testing.T) {
	deadline := time.Unix(1_700_000_000, 0)
	p := Proposal{Deadline: deadline, YayVotes: 3, NayVotes: 1}

	assert.Equal(t, ProposalStateOpen, p.State(deadline.Add(-time.Second)))
	assert.Equal(t, ProposalStateExecutionPending, p.State(deadline.Add(time.Second)))
	assert.Equal(t, "(YAY)", p.OutcomeLabel())

	p.YayVotes, p.NayVotes = 1, 3
	assert.Equal(t, "(NAY)", p.OutcomeLabel())

	// ties are not a majority
	p.YayVotes, p.NayVotes = 2, 2
	assert.False(t, p.Passing())
	assert.Equal(t, "(NAY)", p.OutcomeLabel())
}

func TestParseVote(t *testing.T) {
	v, err := ParseVote("yay")
	require.NoError(t, err)
	assert.Equal(t, VoteYay, v)
	assert.Equal(t, "YAY", v.String())

	v, err = ParseVote("NAY")
	require.NoError(t, err)
	assert.Equal(t, VoteNay, v)

	_, err = ParseVote("maybe")
	assert.Error(t, err)
}

func TestChainConversions(t *testing.T) {
	assert.Equal(t, time.Unix(1_700_000_000, 0), DeadlineFromChain(big.NewInt(1_700_000_000)))
	assert.True(t, DeadlineFromChain(nil).IsZero())

	assert.Equal(t, uint64(7), CountFromChain(big.NewInt(7)))
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	assert.Equal(t, ^uint64(0), CountFromChain(huge))
}

func TestProposalStateText(t *testing.T) {
	for _, st := range []ProposalState{ProposalStateOpen, ProposalStateExecutionPending, ProposalStateClosed} {
		text, err := st.MarshalText()
		require.NoError(t, err)
		var got ProposalState
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, st, got)
	}
	var bad ProposalState
	assert.Error(t, bad.UnmarshalText([]byte("pending")))
}
