package client

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/calehh/dao-app/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
)

type Tab string

const (
	TabNone           Tab = ""
	TabCreateProposal Tab = "create"
	TabProposals      Tab = "proposals"
)

// View is a snapshot of the session state. It is never a source of truth;
// every field is re-read from the chain.
type View struct {
	Connected     bool           `json:"connected"`
	Address       common.Address `json:"address"`
	TreasuryWei   string         `json:"treasury_wei"`
	TreasuryETH   string         `json:"treasury_eth"`
	NFTBalance    string         `json:"nft_balance"`
	ProposalCount uint64         `json:"proposal_count"`
	Tab           Tab            `json:"tab"`
	Loading       bool           `json:"loading"`
}

type Option func(*Session)

func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithAlert sets the hook used for user facing warnings.
func WithAlert(alert func(msg string)) Option {
	return func(s *Session) { s.alert = alert }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithFetchConcurrency(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.fetchConcurrency = n
		}
	}
}

type Session struct {
	wallet           Wallet
	chainID          *big.Int
	network          string
	logger           cmtlog.Logger
	recorder         Recorder
	alert            func(msg string)
	now              func() time.Time
	fetchConcurrency int

	mtx          sync.Mutex
	connected    bool
	treasury     *big.Int
	nftBalance   *big.Int
	numProposals uint64
	proposals    []types.Proposal
	tab          Tab
	loading      bool
}

func NewSession(wallet Wallet, chainID *big.Int, network string, logger cmtlog.Logger, opts ...Option) *Session {
	s := &Session{
		wallet:           wallet,
		chainID:          new(big.Int).Set(chainID),
		network:          network,
		logger:           logger.With("module", "session"),
		alert:            func(string) {},
		now:              time.Now,
		fetchConcurrency: 1,
		treasury:         new(big.Int),
		nftBalance:       new(big.Int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) checkNetwork(ctx context.Context) error {
	id, err := s.wallet.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("query chain id: %w", err)
	}
	if id.Cmp(s.chainID) != 0 {
		s.alert(fmt.Sprintf("Please switch to the %s network!", s.network))
		s.logger.Error("wrong network", "want", s.chainID, "got", id)
		return fmt.Errorf("%w: want chain %v, got %v", ErrWrongNetwork, s.chainID, id)
	}
	return nil
}

func (s *Session) provider(ctx context.Context) (Reader, error) {
	if err := s.checkNetwork(ctx); err != nil {
		return nil, err
	}
	return s.wallet.Reader(), nil
}

func (s *Session) signer(ctx context.Context) (Writer, error) {
	if err := s.checkNetwork(ctx); err != nil {
		return nil, err
	}
	return s.wallet.Signer()
}

// Connect verifies the network, marks the session connected and loads the
// treasury balance, the caller's NFT balance and the proposal count. Only a
// network failure is returned; a mismatch fails before any read is issued.
func (s *Session) Connect(ctx context.Context) error {
	if _, err := s.provider(ctx); err != nil {
		s.logger.Error("connect wallet fail", "err", err)
		return err
	}
	s.mtx.Lock()
	s.connected = true
	s.mtx.Unlock()
	s.logger.Info("wallet connected", "address", s.wallet.Address())
	s.refreshAll(ctx)
	return nil
}

// Refresh re-reads the treasury balance, the caller's NFT balance and the
// proposal count. Read failures are logged and keep the cached value; only
// a network failure is returned.
func (s *Session) Refresh(ctx context.Context) error {
	if _, err := s.provider(ctx); err != nil {
		return err
	}
	s.refreshAll(ctx)
	return nil
}

func (s *Session) refreshAll(ctx context.Context) {
	s.RefreshTreasury(ctx)
	s.RefreshNFTBalance(ctx)
	s.RefreshProposalCount(ctx)
}

func (s *Session) Connected() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.connected
}

func (s *Session) RefreshTreasury(ctx context.Context) (*big.Int, error) {
	r, err := s.provider(ctx)
	if err != nil {
		return nil, err
	}
	bal, err := r.TreasuryBalance(ctx)
	if err != nil {
		s.logger.Error("get treasury balance fail", "err", err)
		return nil, err
	}
	s.mtx.Lock()
	s.treasury = bal
	s.mtx.Unlock()
	return new(big.Int).Set(bal), nil
}

func (s *Session) RefreshNFTBalance(ctx context.Context) (*big.Int, error) {
	r, err := s.provider(ctx)
	if err != nil {
		return nil, err
	}
	bal, err := r.NFTBalance(ctx, s.wallet.Address())
	if err != nil {
		s.logger.Error("get nft balance fail", "err", err)
		return nil, err
	}
	s.mtx.Lock()
	s.nftBalance = bal
	s.mtx.Unlock()
	return new(big.Int).Set(bal), nil
}

func (s *Session) RefreshProposalCount(ctx context.Context) (uint64, error) {
	r, err := s.provider(ctx)
	if err != nil {
		return 0, err
	}
	n, err := r.ProposalCount(ctx)
	if err != nil {
		s.logger.Error("get proposal count fail", "err", err)
		return 0, err
	}
	s.mtx.Lock()
	s.numProposals = n
	s.mtx.Unlock()
	return n, nil
}

// SelectTab switches the active tab. Switching to the proposals tab
// re-fetches the whole proposal list.
func (s *Session) SelectTab(ctx context.Context, tab Tab) error {
	s.mtx.Lock()
	s.tab = tab
	s.mtx.Unlock()
	if tab == TabProposals {
		_, err := s.FetchAllProposals(ctx)
		return err
	}
	return nil
}

func (s *Session) View() View {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return View{
		Connected:     s.connected,
		Address:       s.wallet.Address(),
		TreasuryWei:   s.treasury.String(),
		TreasuryETH:   types.FormatEther(s.treasury),
		NFTBalance:    s.nftBalance.String(),
		ProposalCount: s.numProposals,
		Tab:           s.tab,
		Loading:       s.loading,
	}
}

// Proposals returns the cached list from the last complete fetch.
func (s *Session) Proposals() []types.Proposal {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	out := make([]types.Proposal, len(s.proposals))
	copy(out, s.proposals)
	return out
}

func (s *Session) Loading() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.loading
}

// MarketPrice returns the marketplace's price for one NFT.
func (s *Session) MarketPrice(ctx context.Context) (*big.Int, error) {
	r, err := s.provider(ctx)
	if err != nil {
		return nil, err
	}
	return r.NFTPrice(ctx)
}

func (s *Session) MarketAvailable(ctx context.Context, tokenID *big.Int) (bool, error) {
	r, err := s.provider(ctx)
	if err != nil {
		return false, err
	}
	return r.NFTAvailable(ctx, tokenID)
}
