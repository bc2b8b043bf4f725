package main

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/calehh/dao-app/client"
	"github.com/calehh/dao-app/types"
	"github.com/spf13/cobra"
)

type proposalsArguments struct {
	Home string
}

var proposalsArgs proposalsArguments

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "List every proposal with its state and available actions",
	Args:  cobra.NoArgs,
	RunE:  proposalsRun,
}

func init() {
	homeFlag(proposalsCmd, &proposalsArgs.Home)
}

func proposalsRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	e, err := connect(ctx, proposalsArgs.Home)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.session.SelectTab(ctx, client.TabProposals); err != nil {
		return err
	}
	printProposals(e.session.ProposalsView(time.Now()))
	return nil
}

func printProposals(view client.ProposalsView) {
	if view.Message != "" {
		fmt.Println(view.Message)
		return
	}
	for _, card := range view.Cards {
		fmt.Printf("Proposal ID: %d\n", card.ID)
		fmt.Printf("Fake NFT to Purchase: %s\n", card.NFTTokenID)
		fmt.Printf("Deadline: %s\n", card.Deadline.Local().Format(time.RFC1123))
		fmt.Printf("Yay Votes: %d\n", card.YayVotes)
		fmt.Printf("Nay Votes: %d\n", card.NayVotes)
		fmt.Printf("Executed?: %t\n", card.Executed)
		if card.Note != "" {
			fmt.Println(card.Note)
		}
		labels := make([]string, 0, len(card.Actions))
		for _, a := range card.Actions {
			labels = append(labels, "["+a.Label+"]")
		}
		if len(labels) > 0 {
			fmt.Println(strings.Join(labels, " "))
		}
		fmt.Println()
	}
}

type createArguments struct {
	Home  string
	Token string
}

var createArgs createArguments

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a proposal to buy a marketplace NFT",
	Args:  cobra.NoArgs,
	RunE:  createRun,
}

func init() {
	homeFlag(createCmd, &createArgs.Home)
	createCmd.Flags().StringVarP(&createArgs.Token, "token", "t", "", "fake NFT token id to purchase")
	createCmd.MarkFlagRequired("token")
}

func createRun(cmd *cobra.Command, args []string) error {
	tokenID, ok := new(big.Int).SetString(createArgs.Token, 10)
	if !ok || tokenID.Sign() < 0 {
		return fmt.Errorf("invalid token id %q", createArgs.Token)
	}
	ctx := context.Background()
	e, err := connect(ctx, createArgs.Home)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.session.SelectTab(ctx, client.TabCreateProposal); err != nil {
		return err
	}
	if v := e.session.CreateProposalView(); !v.Controls {
		return fmt.Errorf("%s", v.Message)
	}
	fmt.Println(client.MsgLoading)
	receipt, err := e.session.CreateProposal(ctx, tokenID)
	if err != nil {
		return err
	}
	fmt.Printf("proposal created in tx %s (block %v)\n", receipt.TxHash.Hex(), receipt.BlockNumber)
	fmt.Printf("Total Number of Proposals: %d\n", e.session.View().ProposalCount)
	return nil
}

type voteArguments struct {
	Home string
	ID   uint64
	Vote string
}

var voteArgs voteArguments

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Vote YAY or NAY on a proposal",
	Args:  cobra.NoArgs,
	RunE:  voteRun,
}

func init() {
	homeFlag(voteCmd, &voteArgs.Home)
	voteCmd.Flags().Uint64VarP(&voteArgs.ID, "id", "i", 0, "proposal id")
	voteCmd.Flags().StringVarP(&voteArgs.Vote, "vote", "v", "", "yay or nay")
	voteCmd.MarkFlagRequired("id")
	voteCmd.MarkFlagRequired("vote")
}

func voteRun(cmd *cobra.Command, args []string) error {
	vote, err := types.ParseVote(voteArgs.Vote)
	if err != nil {
		return err
	}
	ctx := context.Background()
	e, err := connect(ctx, voteArgs.Home)
	if err != nil {
		return err
	}
	defer e.close()

	fmt.Println(client.MsgLoading)
	receipt, err := e.session.Vote(ctx, voteArgs.ID, vote)
	if err != nil {
		return err
	}
	fmt.Printf("voted %s on proposal %d in tx %s\n", vote, voteArgs.ID, receipt.TxHash.Hex())
	printProposals(e.session.ProposalsView(time.Now()))
	return nil
}

type executeArguments struct {
	Home string
	ID   uint64
}

var executeArgs executeArguments

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute a proposal whose deadline has passed",
	Args:  cobra.NoArgs,
	RunE:  executeRun,
}

func init() {
	homeFlag(executeCmd, &executeArgs.Home)
	executeCmd.Flags().Uint64VarP(&executeArgs.ID, "id", "i", 0, "proposal id")
	executeCmd.MarkFlagRequired("id")
}

func executeRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	e, err := connect(ctx, executeArgs.Home)
	if err != nil {
		return err
	}
	defer e.close()

	fmt.Println(client.MsgLoading)
	receipt, err := e.session.Execute(ctx, executeArgs.ID)
	if err != nil {
		return err
	}
	fmt.Printf("executed proposal %d in tx %s\n", executeArgs.ID, receipt.TxHash.Hex())
	fmt.Printf("Treasury Balance: %s ETH\n", e.session.View().TreasuryETH)
	return nil
}
