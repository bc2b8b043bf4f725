package indexer

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/calehh/dao-app/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndexer(t *testing.T) *Indexer {
	c, err := New(filepath.Join(t.TempDir(), "data", "indexer.db"), cmtlog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func testProposals(now time.Time) []types.Proposal {
	return []types.Proposal{
		{ID: 0, NFTTokenID: big.NewInt(7), Deadline: now.Add(time.Minute), YayVotes: 1},
		{ID: 1, NFTTokenID: big.NewInt(9), Deadline: now.Add(-time.Minute), YayVotes: 1, NayVotes: 1},
		{ID: 2, NFTTokenID: big.NewInt(3), Deadline: now.Add(-time.Hour), YayVotes: 2, Executed: true},
	}
}

func TestSaveProposalsUpsert(t *testing.T) {
	c := newTestIndexer(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	require.NoError(t, c.SaveProposals(ctx, testProposals(now), now))
	ps, total, err := c.GetProposals(0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, ps, 3)
	assert.Equal(t, uint64(2), ps[0].ProposalId)
	assert.Equal(t, uint64(0), ps[2].ProposalId)
	assert.Equal(t, "7", ps[2].NftTokenId)
	assert.Equal(t, "open", ps[2].State)
	assert.Equal(t, "execution_pending", ps[1].State)
	assert.Equal(t, "closed", ps[0].State)

	later := now.Add(2 * time.Minute)
	updated := testProposals(now)
	updated[0].NayVotes = 4
	require.NoError(t, c.SaveProposals(ctx, updated, later))

	_, total, err = c.GetProposals(0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	p, err := c.GetProposalById(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), p.NayVotes)
	assert.Equal(t, "execution_pending", p.State)
	assert.Equal(t, later.Unix(), p.SyncTimestamp)

	_, err = c.GetProposalById(9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProposalsPaging(t *testing.T) {
	c := newTestIndexer(t)
	now := time.Unix(1700000000, 0)
	require.NoError(t, c.SaveProposals(context.Background(), testProposals(now), now))

	ps, total, err := c.GetProposals(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, ps, 1)
	assert.Equal(t, uint64(0), ps[0].ProposalId)

	_, _, err = c.GetProposals(0, 0)
	assert.Error(t, err)
}

func TestSaveTx(t *testing.T) {
	c := newTestIndexer(t)
	ctx := context.Background()
	from := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	recs := []*types.TxRecord{
		{Hash: common.HexToHash("0x01"), Kind: types.TxKindCreateProposal, From: from, Status: types.TxStatusConfirmed, Block: 10, Time: time.Unix(100, 0)},
		{Hash: common.HexToHash("0x02"), Kind: types.TxKindVoteOnProposal, From: from, Proposal: 1, Status: types.TxStatusReverted, Block: 11, Err: "reverted", Time: time.Unix(200, 0)},
		{Hash: common.HexToHash("0x03"), Kind: types.TxKindExecuteProposal, From: from, Proposal: 1, Status: types.TxStatusConfirmed, Block: 12, Time: time.Unix(300, 0)},
	}
	for _, r := range recs {
		require.NoError(t, c.SaveTx(ctx, r))
	}

	txs, total, err := c.GetTxs(0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, txs, 3)
	assert.Equal(t, recs[2].Hash.Hex(), txs[0].Hash)
	assert.Equal(t, "execute_proposal", txs[0].Kind)
	assert.Equal(t, from.Hex(), txs[0].FromAddress)

	txs, total, err = c.GetTxsByProposal(1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Equal(t, "reverted", txs[1].Status)
	assert.Equal(t, "reverted", txs[1].Err)
}
