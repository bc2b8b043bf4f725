package types

import (
	"fmt"
	"math/big"
	"time"
)

type Proposal struct {
	ID         uint64    `json:"id"`
	NFTTokenID *big.Int  `json:"nft_token_id"`
	Deadline   time.Time `json:"deadline"`
	YayVotes   uint64    `json:"yay_votes"`
	NayVotes   uint64    `json:"nay_votes"`
	Executed   bool      `json:"executed"`
}

// Vote values match the DAO contract's Vote enum.
type Vote uint8

const (
	VoteYay Vote = 0
	VoteNay Vote = 1
)

func (v Vote) String() string {
	switch v {
	case VoteYay:
		return "YAY"
	case VoteNay:
		return "NAY"
	default:
		return fmt.Sprintf("Vote(%d)", uint8(v))
	}
}

func ParseVote(s string) (Vote, error) {
	switch s {
	case "yay", "YAY", "yes", "0":
		return VoteYay, nil
	case "nay", "NAY", "no", "1":
		return VoteNay, nil
	}
	return 0, fmt.Errorf("invalid vote %q, want yay or nay", s)
}

type ProposalState uint8

const (
	ProposalStateOpen             ProposalState = 1
	ProposalStateExecutionPending ProposalState = 2
	ProposalStateClosed           ProposalState = 3
)

func (s ProposalState) String() string {
	switch s {
	case ProposalStateOpen:
		return "open"
	case ProposalStateExecutionPending:
		return "execution_pending"
	case ProposalStateClosed:
		return "closed"
	}
	return "unknown"
}

func (s ProposalState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ProposalState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "open":
		*s = ProposalStateOpen
	case "execution_pending":
		*s = ProposalStateExecutionPending
	case "closed":
		*s = ProposalStateClosed
	default:
		return fmt.Errorf("unknown proposal state %q", text)
	}
	return nil
}

// DeriveState is a pure function of the deadline, the executed flag and the
// wall clock. Executed always wins over time.
func DeriveState(deadline time.Time, executed bool, now time.Time) ProposalState {
	if executed {
		return ProposalStateClosed
	}
	if now.Before(deadline) {
		return ProposalStateOpen
	}
	return ProposalStateExecutionPending
}

func (p *Proposal) State(now time.Time) ProposalState {
	return DeriveState(p.Deadline, p.Executed, now)
}

// Passing previews the outcome of execution. Ties go to nay.
func (p *Proposal) Passing() bool {
	return p.YayVotes > p.NayVotes
}

func (p *Proposal) OutcomeLabel() string {
	if p.Passing() {
		return "(YAY)"
	}
	return "(NAY)"
}

// DeadlineFromChain converts a contract deadline in unix seconds.
func DeadlineFromChain(seconds *big.Int) time.Time {
	if seconds == nil || !seconds.IsInt64() {
		return time.Time{}
	}
	return time.Unix(seconds.Int64(), 0)
}

// CountFromChain clamps a uint256 vote counter into a display count.
func CountFromChain(n *big.Int) uint64 {
	if n == nil || n.Sign() < 0 {
		return 0
	}
	if !n.IsUint64() {
		return ^uint64(0)
	}
	return n.Uint64()
}
