package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/calehh/dao-app/types"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// CreateProposal submits createProposal(tokenID) and, once confirmed,
// re-reads the proposal count.
func (s *Session) CreateProposal(ctx context.Context, nftTokenID *big.Int) (*ethtypes.Receipt, error) {
	if nftTokenID == nil || nftTokenID.Sign() < 0 {
		return nil, fmt.Errorf("invalid nft token id %v", nftTokenID)
	}
	if err := s.requireMember(ctx); err != nil {
		return nil, err
	}
	available, err := s.MarketAvailable(ctx, nftTokenID)
	switch {
	case errors.Is(err, ErrMarketplaceNotConfigured):
	case err != nil:
		s.logger.Error("check nft availability fail", "token", nftTokenID, "err", err)
		return nil, err
	case !available:
		return nil, fmt.Errorf("%w: token %v", ErrNFTUnavailable, nftTokenID)
	}

	rec := &types.TxRecord{Kind: types.TxKindCreateProposal}
	receipt, err := s.submit(ctx, rec, func(w Writer) (*ethtypes.Transaction, error) {
		return w.CreateProposal(ctx, nftTokenID)
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.RefreshProposalCount(ctx); err != nil {
		s.logger.Error("refresh after create fail", "err", err)
	}
	return receipt, nil
}

// Vote submits voteOnProposal(id, vote) and re-fetches all proposals once
// confirmed.
func (s *Session) Vote(ctx context.Context, id uint64, vote types.Vote) (*ethtypes.Receipt, error) {
	if vote != types.VoteYay && vote != types.VoteNay {
		return nil, fmt.Errorf("invalid vote %v", vote)
	}
	if err := s.requireMember(ctx); err != nil {
		return nil, err
	}
	rec := &types.TxRecord{Kind: types.TxKindVoteOnProposal, Proposal: id}
	receipt, err := s.submit(ctx, rec, func(w Writer) (*ethtypes.Transaction, error) {
		return w.VoteOnProposal(ctx, id, vote)
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.FetchAllProposals(ctx); err != nil {
		s.logger.Error("refresh after vote fail", "err", err)
	}
	return receipt, nil
}

// Execute submits executeProposal(id) and, once confirmed, re-fetches all
// proposals and the treasury balance.
func (s *Session) Execute(ctx context.Context, id uint64) (*ethtypes.Receipt, error) {
	if s.Loading() {
		return nil, ErrTxInFlight
	}
	rec := &types.TxRecord{Kind: types.TxKindExecuteProposal, Proposal: id}
	receipt, err := s.submit(ctx, rec, func(w Writer) (*ethtypes.Transaction, error) {
		return w.ExecuteProposal(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.FetchAllProposals(ctx); err != nil {
		s.logger.Error("refresh after execute fail", "err", err)
	}
	s.RefreshTreasury(ctx)
	return receipt, nil
}

// requireMember checks the session is idle and connected and re-reads the
// caller's NFT balance. A failed read falls back to the cached balance.
func (s *Session) requireMember(ctx context.Context) error {
	s.mtx.Lock()
	loading, connected := s.loading, s.connected
	s.mtx.Unlock()
	switch {
	case loading:
		return ErrTxInFlight
	case !connected:
		return ErrNotConnected
	}
	if _, err := s.RefreshNFTBalance(ctx); errors.Is(err, ErrWrongNetwork) {
		return err
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.nftBalance.Sign() == 0 {
		return ErrNotMember
	}
	return nil
}

// submit runs one transaction under the in-flight flag. The flag is
// cleared on every exit path.
func (s *Session) submit(ctx context.Context, rec *types.TxRecord, send func(w Writer) (*ethtypes.Transaction, error)) (*ethtypes.Receipt, error) {
	s.mtx.Lock()
	if s.loading {
		s.mtx.Unlock()
		return nil, ErrTxInFlight
	}
	s.loading = true
	s.mtx.Unlock()
	defer func() {
		s.mtx.Lock()
		s.loading = false
		s.mtx.Unlock()
	}()

	w, err := s.signer(ctx)
	if err != nil {
		s.logger.Error("get signer fail", "kind", rec.Kind, "err", err)
		return nil, err
	}
	tx, err := send(w)
	if err != nil {
		s.logger.Error("send tx fail", "kind", rec.Kind, "err", err)
		return nil, err
	}
	s.logger.Info("tx sent", "kind", rec.Kind, "hash", tx.Hash())

	rec.Hash = tx.Hash()
	rec.From = s.wallet.Address()
	receipt, err := w.WaitConfirmed(ctx, tx)
	switch {
	case errors.Is(err, ErrTxReverted):
		rec.Status = types.TxStatusReverted
	case err != nil:
		rec.Status = types.TxStatusFailed
	default:
		rec.Status = types.TxStatusConfirmed
	}
	if receipt != nil && receipt.BlockNumber != nil {
		rec.Block = receipt.BlockNumber.Uint64()
	}
	if err != nil {
		rec.Err = err.Error()
		s.logger.Error("wait tx fail", "kind", rec.Kind, "hash", tx.Hash(), "err", err)
	} else {
		s.logger.Info("tx confirmed", "kind", rec.Kind, "hash", tx.Hash(), "block", rec.Block)
	}
	s.record(ctx, rec)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *Session) record(ctx context.Context, rec *types.TxRecord) {
	if s.recorder == nil {
		return
	}
	rec.Time = s.now()
	if err := s.recorder.SaveTx(ctx, rec); err != nil {
		s.logger.Error("record tx fail", "hash", rec.Hash, "err", err)
	}
}
