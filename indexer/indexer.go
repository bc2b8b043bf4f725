package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/calehh/dao-app/client"
	"github.com/calehh/dao-app/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

var _ client.Recorder = &Indexer{}

var ErrNotFound = errors.New("not found")

// Indexer keeps a local history of proposal snapshots and submitted
// transactions. The chain stays authoritative; nothing is read back into
// a session.
type Indexer struct {
	logger cmtlog.Logger
	db     *gorm.DB
}

func New(dbPath string, logger cmtlog.Logger) (*Indexer, error) {
	logger.Info("NewIndexer", "dbPath", dbPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	db.DB().SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Proposal{}, &Tx{}).Error; err != nil {
		db.Close()
		return nil, err
	}
	return &Indexer{
		logger: logger.With("module", "indexer"),
		db:     db,
	}, nil
}

func (c *Indexer) Close() error {
	return c.db.Close()
}

// SaveProposals upserts one row per proposal in a single transaction.
func (c *Indexer) SaveProposals(ctx context.Context, proposals []types.Proposal, now time.Time) error {
	tx := c.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	for _, p := range proposals {
		rec := Proposal{
			Key:           strconv.FormatUint(p.ID, 10),
			ProposalId:    p.ID,
			Deadline:      p.Deadline.Unix(),
			YayVotes:      p.YayVotes,
			NayVotes:      p.NayVotes,
			Executed:      p.Executed,
			State:         p.State(now).String(),
			SyncTimestamp: now.Unix(),
		}
		if p.NFTTokenID != nil {
			rec.NftTokenId = p.NFTTokenID.String()
		}
		if err := tx.Save(&rec).Error; err != nil {
			tx.Rollback()
			c.logger.Error("save proposal fail", "id", p.ID, "err", err)
			return err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}
	c.logger.Debug("saved proposals", "count", len(proposals))
	return nil
}

func (c *Indexer) SaveTx(ctx context.Context, rec *types.TxRecord) error {
	row := Tx{
		Hash:            rec.Hash.Hex(),
		Kind:            string(rec.Kind),
		FromAddress:     rec.From.Hex(),
		Proposal:        rec.Proposal,
		Status:          string(rec.Status),
		Height:          rec.Block,
		Err:             rec.Err,
		CreateTimestamp: rec.Time.Unix(),
	}
	if err := c.db.Save(&row).Error; err != nil {
		c.logger.Error("save tx fail", "hash", row.Hash, "err", err)
		return err
	}
	return nil
}

func (c *Indexer) GetProposals(page int, pageSize int) ([]Proposal, uint64, error) {
	if err := checkPage(page, pageSize); err != nil {
		return nil, 0, err
	}
	proposals := []Proposal{}
	err := c.db.Order("proposal_id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&Proposal{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (c *Indexer) GetProposalById(id uint64) (Proposal, error) {
	var proposal Proposal
	err := c.db.Where("proposal_id = ?", id).First(&proposal).Error
	if gorm.IsRecordNotFoundError(err) {
		return Proposal{}, fmt.Errorf("proposal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Proposal{}, err
	}
	return proposal, nil
}

func (c *Indexer) GetTxs(page int, pageSize int) ([]Tx, uint64, error) {
	if err := checkPage(page, pageSize); err != nil {
		return nil, 0, err
	}
	txs := []Tx{}
	err := c.db.Order("create_timestamp desc").Offset(page * pageSize).Limit(pageSize).Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&Tx{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func (c *Indexer) GetTxsByProposal(proposal uint64, page int, pageSize int) ([]Tx, uint64, error) {
	if err := checkPage(page, pageSize); err != nil {
		return nil, 0, err
	}
	txs := []Tx{}
	err := c.db.Where("proposal = ?", proposal).Order("create_timestamp desc").Offset(page * pageSize).Limit(pageSize).Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&Tx{}).Where("proposal = ?", proposal).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func checkPage(page, pageSize int) error {
	if page < 0 || pageSize <= 0 {
		return fmt.Errorf("invalid page %d size %d", page, pageSize)
	}
	return nil
}
