package client

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/calehh/dao-app/types"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrWrongNetwork             = errors.New("wrong network")
	ErrNotConnected             = errors.New("wallet not connected")
	ErrTxInFlight               = errors.New("transaction in flight")
	ErrTxReverted               = errors.New("transaction reverted")
	ErrNotMember                = errors.New("caller holds no membership nft")
	ErrNFTUnavailable           = errors.New("nft not available in marketplace")
	ErrMarketplaceNotConfigured = errors.New("marketplace not configured")
)

// Reader is the read-only connection.
type Reader interface {
	TreasuryBalance(ctx context.Context) (*big.Int, error)
	NFTBalance(ctx context.Context, owner common.Address) (*big.Int, error)
	ProposalCount(ctx context.Context) (uint64, error)
	Proposal(ctx context.Context, id uint64) (types.Proposal, error)
	NFTPrice(ctx context.Context) (*big.Int, error)
	NFTAvailable(ctx context.Context, tokenID *big.Int) (bool, error)
}

// Writer is the signing connection. WaitConfirmed blocks until the
// transaction has one confirmation and fails with ErrTxReverted when the
// receipt carries a failed status.
type Writer interface {
	CreateProposal(ctx context.Context, nftTokenID *big.Int) (*ethtypes.Transaction, error)
	VoteOnProposal(ctx context.Context, id uint64, vote types.Vote) (*ethtypes.Transaction, error)
	ExecuteProposal(ctx context.Context, id uint64) (*ethtypes.Transaction, error)
	WaitConfirmed(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Receipt, error)
}

// Wallet is the session scoped connection: one endpoint, one key.
type Wallet interface {
	ChainID(ctx context.Context) (*big.Int, error)
	Address() common.Address
	Reader() Reader
	Signer() (Writer, error)
}

// Recorder keeps a non-authoritative history of what the session saw and
// submitted.
type Recorder interface {
	SaveProposals(ctx context.Context, proposals []types.Proposal, now time.Time) error
	SaveTx(ctx context.Context, rec *types.TxRecord) error
}
