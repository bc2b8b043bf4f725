package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var daoCmd = &cobra.Command{
	Use:   "dao",
	Short: "CryptoDevs DAO deployer and client",
	Long: `Deploys the CryptoDevs DAO and its NFT marketplace, and lets NFT
holders create, vote on and execute treasury proposals.`,
}

func main() {
	daoCmd.AddCommand(initCmd)
	daoCmd.AddCommand(versionCmd)
	daoCmd.AddCommand(deployCmd)
	daoCmd.AddCommand(statusCmd)
	daoCmd.AddCommand(proposalsCmd)
	daoCmd.AddCommand(createCmd)
	daoCmd.AddCommand(voteCmd)
	daoCmd.AddCommand(executeCmd)
	daoCmd.AddCommand(marketCmd)
	daoCmd.AddCommand(serveCmd)
	if err := daoCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
