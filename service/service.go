package service

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/calehh/dao-app/client"
	"github.com/calehh/dao-app/indexer"
	"github.com/calehh/dao-app/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
)

// History is the read side of the local indexer.
type History interface {
	GetProposals(page int, pageSize int) ([]indexer.Proposal, uint64, error)
	GetProposalById(id uint64) (indexer.Proposal, error)
	GetTxs(page int, pageSize int) ([]indexer.Tx, uint64, error)
	GetTxsByProposal(proposal uint64, page int, pageSize int) ([]indexer.Tx, uint64, error)
}

type Service struct {
	engine     *gin.Engine
	session    *client.Session
	history    History
	listenAddr string
	logger     cmtlog.Logger
	now        func() time.Time
	srv        *http.Server
}

// NewService wires the routes. history may be nil when the indexer is
// disabled; the history routes then answer 503.
func NewService(listenAddr string, session *client.Session, history History, logger cmtlog.Logger) *Service {
	r := gin.Default()
	s := &Service{
		engine:     r,
		session:    session,
		history:    history,
		listenAddr: listenAddr,
		logger:     logger.With("module", "service"),
		now:        time.Now,
	}
	s.engine.GET("/status", s.handleStatus)
	s.engine.GET("/create", s.handleCreateView)
	s.engine.GET("/proposals", s.handleProposals)
	s.engine.POST("/proposals", s.handleCreateProposal)
	s.engine.POST("/proposals/:id/vote", s.handleVote)
	s.engine.POST("/proposals/:id/execute", s.handleExecute)
	s.engine.GET("/market", s.handleMarket)
	s.engine.POST("/getProposals", s.handleGetProposals)
	s.engine.POST("/getTransactions", s.handleGetTransactions)
	s.srv = &http.Server{Addr: listenAddr, Handler: s.engine}
	return s
}

func (s *Service) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. It returns nil after Shutdown.
func (s *Service) Start() error {
	s.logger.Info("service listening", "addr", s.listenAddr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, client.ErrWrongNetwork):
		return http.StatusPreconditionFailed
	case errors.Is(err, client.ErrTxInFlight), errors.Is(err, client.ErrNFTUnavailable):
		return http.StatusConflict
	case errors.Is(err, client.ErrNotConnected), errors.Is(err, client.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, client.ErrMarketplaceNotConfigured):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Service) fail(c *gin.Context, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request fail", "path", c.FullPath(), "err", err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// handleStatus re-reads the chain so the view tracks transfers made
// outside this process.
func (s *Service) handleStatus(c *gin.Context) {
	if err := s.session.Refresh(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.session.View())
}

func (s *Service) handleCreateView(c *gin.Context) {
	if err := s.session.Refresh(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.session.CreateProposalView())
}

// handleProposals re-reads the count and then every proposal, the same
// as opening the proposals tab.
func (s *Service) handleProposals(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := s.session.RefreshProposalCount(ctx); err != nil {
		s.fail(c, err)
		return
	}
	if err := s.session.SelectTab(ctx, client.TabProposals); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.session.ProposalsView(s.now()))
}

type TxResponse struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

func txResponse(receipt *ethtypes.Receipt) TxResponse {
	res := TxResponse{Hash: receipt.TxHash.Hex()}
	if receipt.BlockNumber != nil {
		res.Height = receipt.BlockNumber.Uint64()
	}
	return res
}

type CreateProposalReq struct {
	NftTokenId string `json:"nftTokenId" binding:"required"`
}

func (s *Service) handleCreateProposal(c *gin.Context) {
	var requestData CreateProposalReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tokenID, ok := new(big.Int).SetString(requestData.NftTokenId, 10)
	if !ok || tokenID.Sign() < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nftTokenId"})
		return
	}
	receipt, err := s.session.CreateProposal(c.Request.Context(), tokenID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txResponse(receipt))
}

type VoteReq struct {
	Vote string `json:"vote" binding:"required"`
}

func (s *Service) handleVote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}
	var requestData VoteReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vote, err := types.ParseVote(requestData.Vote)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	receipt, err := s.session.Vote(c.Request.Context(), id, vote)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txResponse(receipt))
}

func (s *Service) handleExecute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}
	receipt, err := s.session.Execute(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txResponse(receipt))
}

type MarketResponse struct {
	PriceWei  string `json:"price_wei"`
	PriceETH  string `json:"price_eth"`
	Available *bool  `json:"available,omitempty"`
}

func (s *Service) handleMarket(c *gin.Context) {
	ctx := c.Request.Context()
	price, err := s.session.MarketPrice(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	res := MarketResponse{PriceWei: price.String(), PriceETH: types.FormatEther(price)}
	if token := c.Query("token"); token != "" {
		tokenID, ok := new(big.Int).SetString(token, 10)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
			return
		}
		available, err := s.session.MarketAvailable(ctx, tokenID)
		if err != nil {
			s.fail(c, err)
			return
		}
		res.Available = &available
	}
	c.JSON(http.StatusOK, res)
}

type PageReq struct {
	ProposalId *uint64 `json:"proposalId"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
}

type GetProposalResponse struct {
	Proposals []indexer.Proposal `json:"proposals"`
	Total     uint64             `json:"total"`
}

func (s *Service) handleGetProposals(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "indexer disabled"})
		return
	}
	var requestData PageReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.ProposalId != nil {
		proposal, err := s.history.GetProposalById(*requestData.ProposalId)
		switch {
		case errors.Is(err, indexer.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err != nil:
			s.fail(c, err)
		default:
			c.JSON(http.StatusOK, GetProposalResponse{Proposals: []indexer.Proposal{proposal}, Total: 1})
		}
		return
	}
	proposals, total, err := s.history.GetProposals(requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetProposalResponse{Proposals: proposals, Total: total})
}

type GetTransactionResponse struct {
	Transactions []indexer.Tx `json:"transactions"`
	Total        uint64       `json:"total"`
}

func (s *Service) handleGetTransactions(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "indexer disabled"})
		return
	}
	var requestData PageReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var (
		txs   []indexer.Tx
		total uint64
		err   error
	)
	if requestData.ProposalId != nil {
		txs, total, err = s.history.GetTxsByProposal(*requestData.ProposalId, requestData.Page, requestData.PageSize)
	} else {
		txs, total, err = s.history.GetTxs(requestData.Page, requestData.PageSize)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetTransactionResponse{Transactions: txs, Total: total})
}
