package wallet

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/calehh/dao-app/client"
	"github.com/calehh/dao-app/config"
	"github.com/calehh/dao-app/contracts"
	"github.com/calehh/dao-app/crypto"
	"github.com/calehh/dao-app/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is what the wallet needs from a node connection. Both
// *ethclient.Client and the simulated backend's client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

type Addresses struct {
	DAO         common.Address
	NFT         common.Address
	Marketplace *common.Address
}

var _ client.Wallet = &Wallet{}
var _ client.Reader = &Wallet{}
var _ client.Writer = &signer{}

type Wallet struct {
	backend        Backend
	key            *crypto.Key
	chainID        *big.Int
	daoAddr        common.Address
	dao            *contracts.DAO
	nft            *contracts.NFT
	market         *contracts.Marketplace
	confirmTimeout time.Duration
	logger         cmtlog.Logger
}

func New(backend Backend, key *crypto.Key, chainID *big.Int, addrs Addresses, confirmTimeout time.Duration, logger cmtlog.Logger) (*Wallet, error) {
	dao, err := contracts.NewDAO(addrs.DAO, backend)
	if err != nil {
		return nil, fmt.Errorf("bind dao: %w", err)
	}
	nft, err := contracts.NewNFT(addrs.NFT, backend)
	if err != nil {
		return nil, fmt.Errorf("bind nft: %w", err)
	}
	w := &Wallet{
		backend:        backend,
		key:            key,
		chainID:        new(big.Int).Set(chainID),
		daoAddr:        addrs.DAO,
		dao:            dao,
		nft:            nft,
		confirmTimeout: confirmTimeout,
		logger:         logger.With("module", "wallet"),
	}
	if addrs.Marketplace != nil {
		w.market, err = contracts.NewMarketplace(*addrs.Marketplace, backend)
		if err != nil {
			return nil, fmt.Errorf("bind marketplace: %w", err)
		}
	}
	return w, nil
}

// Dial opens the configured endpoint and loads the signing key.
func Dial(ctx context.Context, cfg *config.Config, logger cmtlog.Logger) (*Wallet, *ethclient.Client, error) {
	key, err := crypto.LoadKeyFile(cfg.KeyFile())
	if err != nil {
		return nil, nil, err
	}
	daoAddr, err := cfg.Contracts.DAOAddress()
	if err != nil {
		return nil, nil, fmt.Errorf("contracts.dao: %w", err)
	}
	nftAddr, err := cfg.Contracts.NFTAddress()
	if err != nil {
		return nil, nil, fmt.Errorf("contracts.nft: %w", err)
	}
	addrs := Addresses{DAO: daoAddr, NFT: nftAddr}
	if marketAddr, err := cfg.Contracts.MarketplaceAddress(); err == nil {
		addrs.Marketplace = &marketAddr
	}
	cli, err := ethclient.DialContext(ctx, cfg.Chain.RPC)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", cfg.Chain.RPC, err)
	}
	chainID := new(big.Int).SetUint64(cfg.Chain.ChainID)
	w, err := New(cli, key, chainID, addrs, cfg.Chain.ConfirmTimeout, logger)
	if err != nil {
		cli.Close()
		return nil, nil, err
	}
	return w, cli, nil
}

func (w *Wallet) ChainID(ctx context.Context) (*big.Int, error) {
	return w.backend.ChainID(ctx)
}

func (w *Wallet) Address() common.Address {
	return w.key.Address()
}

func (w *Wallet) Reader() client.Reader {
	return w
}

func (w *Wallet) Signer() (client.Writer, error) {
	opts, err := w.key.Transactor(w.chainID)
	if err != nil {
		return nil, err
	}
	return &signer{w: w, opts: opts}, nil
}

func (w *Wallet) callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx, From: w.key.Address()}
}

func (w *Wallet) TreasuryBalance(ctx context.Context) (*big.Int, error) {
	return w.backend.BalanceAt(ctx, w.daoAddr, nil)
}

func (w *Wallet) NFTBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	return w.nft.BalanceOf(w.callOpts(ctx), owner)
}

func (w *Wallet) ProposalCount(ctx context.Context) (uint64, error) {
	n, err := w.dao.NumProposals(w.callOpts(ctx))
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("proposal count out of range: %v", n)
	}
	return n.Uint64(), nil
}

func (w *Wallet) Proposal(ctx context.Context, id uint64) (types.Proposal, error) {
	raw, err := w.dao.Proposals(w.callOpts(ctx), new(big.Int).SetUint64(id))
	if err != nil {
		return types.Proposal{}, err
	}
	return types.Proposal{
		ID:         id,
		NFTTokenID: raw.NftTokenId,
		Deadline:   types.DeadlineFromChain(raw.Deadline),
		YayVotes:   types.CountFromChain(raw.YayVotes),
		NayVotes:   types.CountFromChain(raw.NayVotes),
		Executed:   raw.Executed,
	}, nil
}

func (w *Wallet) NFTPrice(ctx context.Context) (*big.Int, error) {
	if w.market == nil {
		return nil, client.ErrMarketplaceNotConfigured
	}
	return w.market.GetPrice(w.callOpts(ctx))
}

func (w *Wallet) NFTAvailable(ctx context.Context, tokenID *big.Int) (bool, error) {
	if w.market == nil {
		return false, client.ErrMarketplaceNotConfigured
	}
	return w.market.Available(w.callOpts(ctx), tokenID)
}

type signer struct {
	w    *Wallet
	opts *bind.TransactOpts
}

func (s *signer) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *s.opts
	opts.Context = ctx
	return &opts
}

func (s *signer) CreateProposal(ctx context.Context, nftTokenID *big.Int) (*ethtypes.Transaction, error) {
	return s.w.dao.CreateProposal(s.transactOpts(ctx), nftTokenID)
}

func (s *signer) VoteOnProposal(ctx context.Context, id uint64, vote types.Vote) (*ethtypes.Transaction, error) {
	return s.w.dao.VoteOnProposal(s.transactOpts(ctx), new(big.Int).SetUint64(id), uint8(vote))
}

func (s *signer) ExecuteProposal(ctx context.Context, id uint64) (*ethtypes.Transaction, error) {
	return s.w.dao.ExecuteProposal(s.transactOpts(ctx), new(big.Int).SetUint64(id))
}

// WaitConfirmed waits for the transaction to be mined, which is one
// confirmation.
func (s *signer) WaitConfirmed(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Receipt, error) {
	if s.w.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.w.confirmTimeout)
		defer cancel()
	}
	receipt, err := bind.WaitMined(ctx, s.w.backend, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: tx %s", client.ErrTxReverted, tx.Hash().Hex())
	}
	return receipt, nil
}
