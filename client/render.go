package client

import (
	"fmt"
	"time"

	"github.com/calehh/dao-app/types"
)

const (
	MsgLoading      = "Loading... Waiting for transaction..."
	MsgNotMember    = "You do not own any CryptoDevs NFT. You cannot create or vote on proposals"
	MsgNoProposals  = "No proposal have been created"
	MsgExecuted     = "Proposal Executed"
	LabelVoteYay    = "Vote YAY"
	LabelVoteNay    = "Vote NAY"
	labelExecuteFmt = "Execute Proposal %s"
)

type ActionKind string

const (
	ActionVote    ActionKind = "vote"
	ActionExecute ActionKind = "execute"
)

type Action struct {
	Kind  ActionKind  `json:"kind"`
	Label string      `json:"label"`
	Vote  *types.Vote `json:"vote,omitempty"`
}

type ProposalCard struct {
	types.Proposal
	State   types.ProposalState `json:"state"`
	Actions []Action            `json:"actions"`
	Note    string              `json:"note,omitempty"`
}

type ProposalsView struct {
	Message string         `json:"message,omitempty"`
	Cards   []ProposalCard `json:"cards"`
}

// CreateProposalView tells the surface what to show on the create tab.
// Controls is false whenever a message is shown instead of the form.
type CreateProposalView struct {
	Message  string `json:"message,omitempty"`
	Controls bool   `json:"controls"`
}

func (s *Session) CreateProposalView() CreateProposalView {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	switch {
	case s.nftBalance.Sign() == 0:
		return CreateProposalView{Message: MsgNotMember}
	case s.loading:
		return CreateProposalView{Message: MsgLoading}
	}
	return CreateProposalView{Controls: true}
}

func (s *Session) ProposalsView(now time.Time) ProposalsView {
	s.mtx.Lock()
	loading := s.loading
	proposals := make([]types.Proposal, len(s.proposals))
	copy(proposals, s.proposals)
	s.mtx.Unlock()

	if loading {
		return ProposalsView{Message: MsgLoading, Cards: []ProposalCard{}}
	}
	if len(proposals) == 0 {
		return ProposalsView{Message: MsgNoProposals, Cards: []ProposalCard{}}
	}
	cards := make([]ProposalCard, 0, len(proposals))
	for _, p := range proposals {
		cards = append(cards, NewProposalCard(p, now))
	}
	return ProposalsView{Cards: cards}
}

func NewProposalCard(p types.Proposal, now time.Time) ProposalCard {
	card := ProposalCard{
		Proposal: p,
		State:    p.State(now),
		Actions:  []Action{},
	}
	switch card.State {
	case types.ProposalStateOpen:
		yay, nay := types.VoteYay, types.VoteNay
		card.Actions = append(card.Actions,
			Action{Kind: ActionVote, Label: LabelVoteYay, Vote: &yay},
			Action{Kind: ActionVote, Label: LabelVoteNay, Vote: &nay},
		)
	case types.ProposalStateExecutionPending:
		card.Actions = append(card.Actions, Action{
			Kind:  ActionExecute,
			Label: fmt.Sprintf(labelExecuteFmt, p.OutcomeLabel()),
		})
	case types.ProposalStateClosed:
		card.Note = MsgExecuted
	}
	return card
}
