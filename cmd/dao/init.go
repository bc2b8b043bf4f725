package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/calehh/dao-app/config"
	"github.com/spf13/cobra"
)

type printInfo struct {
	Home    string `json:"home"`
	Config  string `json:"config"`
	ChainID uint64 `json:"chain_id"`
	RPC     string `json:"rpc"`
	Owner   string `json:"owner"`
}

func displayInfo(info printInfo) error {
	out, err := json.MarshalIndent(info, "", " ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(os.Stderr, "%s\n", out)

	return err
}

type initArguments struct {
	Home      string
	Overwrite bool
	RPC       string
	ChainID   uint64
	NFT       string
}

var initArgs initArguments

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file and the owner key",
	Long:  `Writes <home>/config/config.toml and generates an owner key unless one exists.`,
	Args:  cobra.NoArgs,
	RunE:  initRun,
}

func init() {
	homeFlag(initCmd, &initArgs.Home)
	initCmd.Flags().BoolVarP(&initArgs.Overwrite, "overwrite", "o", false, "overwrite an existing config.toml")
	initCmd.Flags().StringVar(&initArgs.RPC, "rpc", "", "json-rpc endpoint, defaults to a local node")
	initCmd.Flags().Uint64Var(&initArgs.ChainID, "chain-id", config.GoerliChainID, "required chain id")
	initCmd.Flags().StringVar(&initArgs.NFT, "nft", "", "CryptoDevs NFT contract address")
}

func initRun(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig(initArgs.Home)
	if initArgs.RPC != "" {
		cfg.Chain.RPC = initArgs.RPC
	}
	cfg.Chain.ChainID = initArgs.ChainID
	cfg.Contracts.NFT = initArgs.NFT
	if err := cfg.ValidateBasic(); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.ConfigFile()); err == nil && !initArgs.Overwrite {
		return fmt.Errorf("%s already exists, use --overwrite to replace it", cfg.ConfigFile())
	}
	writeConfig(cfg)

	owner, err := config.InitializeOwner(cfg)
	if err != nil {
		return err
	}
	return displayInfo(printInfo{
		Home:    cfg.RootDir,
		Config:  cfg.ConfigFile(),
		ChainID: cfg.Chain.ChainID,
		RPC:     cfg.Chain.RPC,
		Owner:   owner.Hex(),
	})
}
