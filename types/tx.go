package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type TxKind string

const (
	TxKindCreateProposal  TxKind = "create_proposal"
	TxKindVoteOnProposal  TxKind = "vote_on_proposal"
	TxKindExecuteProposal TxKind = "execute_proposal"
)

type TxStatus string

const (
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusReverted  TxStatus = "reverted"
	TxStatusFailed    TxStatus = "failed"
)

// TxRecord describes the outcome of one submitted transaction.
type TxRecord struct {
	Hash     common.Hash    `json:"hash"`
	Kind     TxKind         `json:"kind"`
	From     common.Address `json:"from"`
	Proposal uint64         `json:"proposal"`
	Status   TxStatus       `json:"status"`
	Block    uint64         `json:"block"`
	Err      string         `json:"err,omitempty"`
	Time     time.Time      `json:"time"`
}
