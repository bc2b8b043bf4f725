package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/calehh/dao-app/contracts"
	"github.com/calehh/dao-app/crypto"
	"github.com/calehh/dao-app/deployer"
	"github.com/calehh/dao-app/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
)

type deployArguments struct {
	Home    string
	Funding string
	Save    bool
}

var deployArgs deployArguments

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the NFT marketplace and the DAO",
	Long: `Deploys FakeNFTMarketplace, then CryptoDevsDAO pointing at it and at the
configured NFT contract, funding the treasury with the configured amount.`,
	Args: cobra.NoArgs,
	RunE: deployRun,
}

func init() {
	homeFlag(deployCmd, &deployArgs.Home)
	deployCmd.Flags().StringVar(&deployArgs.Funding, "funding", "", "treasury funding in ether, overrides deploy.funding")
	deployCmd.Flags().BoolVar(&deployArgs.Save, "save", true, "write the deployed addresses back to config.toml")
}

func deployRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(deployArgs.Home)
	if err != nil {
		return err
	}
	nftAddr, err := cfg.Contracts.NFTAddress()
	if err != nil {
		return fmt.Errorf("contracts.nft: %w", err)
	}
	fundingStr := cfg.Deploy.Funding
	if deployArgs.Funding != "" {
		fundingStr = deployArgs.Funding
	}
	funding, err := types.ParseEther(fundingStr)
	if err != nil {
		return err
	}
	market, err := contracts.LoadArtifact(cfg.Deploy.MarketplaceArtifact)
	if err != nil {
		return err
	}
	dao, err := contracts.LoadArtifact(cfg.Deploy.DAOArtifact)
	if err != nil {
		return err
	}
	key, err := crypto.LoadKeyFile(cfg.KeyFile())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cli, err := ethclient.DialContext(ctx, cfg.Chain.RPC)
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.Chain.RPC, err)
	}
	defer cli.Close()

	chainID := new(big.Int).SetUint64(cfg.Chain.ChainID)
	remote, err := cli.ChainID(ctx)
	if err != nil {
		return err
	}
	if remote.Cmp(chainID) != 0 {
		return fmt.Errorf("connected to chain %v, config wants %v", remote, chainID)
	}
	opts, err := key.Transactor(chainID)
	if err != nil {
		return err
	}

	res, err := deployer.Deploy(ctx, deployer.NewEthDeployer(cli, opts), deployer.Request{
		Marketplace: market,
		DAO:         dao,
		NFT:         nftAddr,
		Funding:     funding,
	}, logger)
	if err != nil {
		return err
	}
	fmt.Printf("FakeNFTMarketplace deployed to %s\n", res.Marketplace.Hex())
	fmt.Printf("CryptoDevsDAO deployed to:%s\n", res.DAO.Hex())

	if deployArgs.Save {
		cfg.Contracts.Marketplace = res.Marketplace.Hex()
		cfg.Contracts.DAO = res.DAO.Hex()
		writeConfig(cfg)
	}
	return nil
}
