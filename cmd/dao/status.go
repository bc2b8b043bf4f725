package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type statusArguments struct {
	Home string
}

var statusArgs statusArguments

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show NFT balance, treasury balance and proposal count",
	Args:  cobra.NoArgs,
	RunE:  statusRun,
}

func init() {
	homeFlag(statusCmd, &statusArgs.Home)
}

func statusRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	e, err := connect(ctx, statusArgs.Home)
	if err != nil {
		return err
	}
	defer e.close()

	v := e.session.View()
	fmt.Printf("Account: %s\n", v.Address.Hex())
	fmt.Printf("Your CryptoDevs NFT Balance: %s\n", v.NFTBalance)
	fmt.Printf("Treasury Balance: %s ETH\n", v.TreasuryETH)
	fmt.Printf("Total Number of Proposals: %d\n", v.ProposalCount)
	if msg := e.session.CreateProposalView().Message; msg != "" {
		fmt.Println(msg)
	}
	return nil
}
