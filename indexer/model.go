package indexer

// sqlite models

// Proposal is a snapshot of one on-chain proposal as of SyncTimestamp.
// Key is the decimal proposal id; the id itself may be 0, which the
// orm would treat as an unset primary key.
type Proposal struct {
	Key           string `gorm:"primary_key" json:"-"`
	ProposalId    uint64 `gorm:"index" json:"id"`
	NftTokenId    string `json:"nft_token_id"`
	Deadline      int64  `json:"deadline"`
	YayVotes      uint64 `json:"yay_votes"`
	NayVotes      uint64 `json:"nay_votes"`
	Executed      bool   `json:"executed"`
	State         string `json:"state"`
	SyncTimestamp int64  `json:"sync_timestamp"`
}

type Tx struct {
	Hash            string `gorm:"primary_key" json:"hash"`
	Kind            string `json:"kind"`
	FromAddress     string `json:"from_address"`
	Proposal        uint64 `json:"proposal"`
	Status          string `json:"status"`
	Height          uint64 `json:"height"`
	Err             string `json:"err,omitempty"`
	CreateTimestamp int64  `json:"create_timestamp"`
}
