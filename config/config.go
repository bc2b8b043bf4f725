package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calehh/dao-app/crypto"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	DefaultConfigDir  = "config"
	DefaultDataDir    = "data"
	DefaultConfigFile = "config.toml"
	DefaultKeyFile    = "owner_priv_key"

	// GoerliChainID is the only network the original deployment targets.
	GoerliChainID = 5
)

var (
	ErrMissingAddress = errors.New("contract address not configured")
	ErrInvalidAddress = errors.New("invalid contract address")
)

type Config struct {
	RootDir  string `mapstructure:"-"`
	LogLevel string `mapstructure:"log_level"`

	Chain     *ChainConfig     `mapstructure:"chain"`
	Contracts *ContractsConfig `mapstructure:"contracts"`
	Deploy    *DeployConfig    `mapstructure:"deploy"`
	Service   *ServiceConfig   `mapstructure:"service"`
	Indexer   *IndexerConfig   `mapstructure:"indexer"`
}

type ChainConfig struct {
	RPC              string        `mapstructure:"rpc"`
	ChainID          uint64        `mapstructure:"chain_id"`
	Network          string        `mapstructure:"network"`
	KeyFile          string        `mapstructure:"key_file"`
	FetchConcurrency int           `mapstructure:"fetch_concurrency"`
	ConfirmTimeout   time.Duration `mapstructure:"confirm_timeout"`
}

type ContractsConfig struct {
	DAO         string `mapstructure:"dao"`
	NFT         string `mapstructure:"nft"`
	Marketplace string `mapstructure:"marketplace"`
}

type DeployConfig struct {
	MarketplaceArtifact string `mapstructure:"marketplace_artifact"`
	DAOArtifact         string `mapstructure:"dao_artifact"`
	Funding             string `mapstructure:"funding"`
}

type ServiceConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

type IndexerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

func DefaultHome() string {
	return os.ExpandEnv("$HOME/.dao")
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = DefaultHome()
	}
	return &Config{
		RootDir:  home,
		LogLevel: "info",
		Chain: &ChainConfig{
			RPC:              "http://127.0.0.1:8545",
			ChainID:          GoerliChainID,
			Network:          "Goerli",
			KeyFile:          filepath.Join(DefaultConfigDir, DefaultKeyFile),
			FetchConcurrency: 1,
			ConfirmTimeout:   5 * time.Minute,
		},
		Contracts: &ContractsConfig{},
		Deploy: &DeployConfig{
			MarketplaceArtifact: "artifacts/contracts/FakeNFTMarketplace.sol/FakeNFTMarketplace.json",
			DAOArtifact:         "artifacts/contracts/CryptoDevsDAO.sol/CryptoDevsDAO.json",
			Funding:             "0.01",
		},
		Service: &ServiceConfig{
			ListenAddr: "127.0.0.1:8080",
		},
		Indexer: &IndexerConfig{
			Enabled: true,
			DBPath:  filepath.Join(DefaultDataDir, "indexer.db"),
		},
	}
}

// Load reads <home>/config/config.toml on top of the defaults.
func Load(home string) (*Config, error) {
	cfg := DefaultConfig(home)
	v := viper.New()
	v.SetConfigFile(cfg.ConfigFile())
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid configuration data: %w", err)
	}
	return cfg, nil
}

func (c *Config) ValidateBasic() error {
	if c.Chain == nil || c.Contracts == nil || c.Deploy == nil || c.Service == nil || c.Indexer == nil {
		return errors.New("missing config section")
	}
	if c.Chain.RPC == "" {
		return errors.New("chain.rpc must be set")
	}
	if c.Chain.ChainID == 0 {
		return errors.New("chain.chain_id must be positive")
	}
	if c.Chain.FetchConcurrency < 1 {
		return fmt.Errorf("chain.fetch_concurrency must be at least 1 (got %d)", c.Chain.FetchConcurrency)
	}
	if c.Chain.ConfirmTimeout < 0 {
		return errors.New("chain.confirm_timeout cannot be negative")
	}
	for name, addr := range map[string]string{
		"contracts.dao":         c.Contracts.DAO,
		"contracts.nft":         c.Contracts.NFT,
		"contracts.marketplace": c.Contracts.Marketplace,
	} {
		if addr != "" && !common.IsHexAddress(addr) {
			return fmt.Errorf("%s: %w", name, ErrInvalidAddress)
		}
	}
	return nil
}

func (c *Config) ConfigFile() string {
	return filepath.Join(c.RootDir, DefaultConfigDir, DefaultConfigFile)
}

func (c *Config) KeyFile() string {
	return c.rootify(c.Chain.KeyFile)
}

func (c *Config) IndexerDB() string {
	return c.rootify(c.Indexer.DBPath)
}

func (c *Config) rootify(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.RootDir, path)
}

func (c *ContractsConfig) DAOAddress() (common.Address, error) {
	return parseAddress(c.DAO)
}

func (c *ContractsConfig) NFTAddress() (common.Address, error) {
	return parseAddress(c.NFT)
}

func (c *ContractsConfig) MarketplaceAddress() (common.Address, error) {
	return parseAddress(c.Marketplace)
}

func parseAddress(s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, ErrMissingAddress
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}

// InitializeOwner creates the signing key unless one already exists and
// returns its address.
func InitializeOwner(cfg *Config) (owner common.Address, err error) {
	path := cfg.KeyFile()
	if _, err := os.Stat(path); err == nil {
		k, err := crypto.LoadKeyFile(path)
		if err != nil {
			return common.Address{}, err
		}
		return k.Address(), nil
	}
	k, err := crypto.GenerateKey()
	if err != nil {
		return common.Address{}, err
	}
	if err := k.SaveKeyFile(path); err != nil {
		return common.Address{}, err
	}
	return k.Address(), nil
}
