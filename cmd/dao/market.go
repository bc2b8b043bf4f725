package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/calehh/dao-app/types"
	"github.com/spf13/cobra"
)

type marketArguments struct {
	Home  string
	Token string
}

var marketArgs marketArguments

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Show the marketplace NFT price and, with --token, its availability",
	Args:  cobra.NoArgs,
	RunE:  marketRun,
}

func init() {
	homeFlag(marketCmd, &marketArgs.Home)
	marketCmd.Flags().StringVarP(&marketArgs.Token, "token", "t", "", "fake NFT token id")
}

func marketRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	e, err := openEnv(ctx, marketArgs.Home)
	if err != nil {
		return err
	}
	defer e.close()

	price, err := e.session.MarketPrice(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("NFT price: %s ETH\n", types.FormatEther(price))
	if marketArgs.Token == "" {
		return nil
	}
	tokenID, ok := new(big.Int).SetString(marketArgs.Token, 10)
	if !ok {
		return fmt.Errorf("invalid token id %q", marketArgs.Token)
	}
	available, err := e.session.MarketAvailable(ctx, tokenID)
	if err != nil {
		return err
	}
	fmt.Printf("token %s available: %t\n", tokenID, available)
	return nil
}
