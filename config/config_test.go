package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndLoadConfig(t *testing.T) {
	home := t.TempDir()
	cfg := DefaultConfig(home)
	cfg.Contracts.DAO = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	cfg.Chain.FetchConcurrency = 4
	cfg.Chain.ConfirmTimeout = 90 * time.Second
	WriteConfigFile(cfg.ConfigFile(), cfg)

	loaded, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, home, loaded.RootDir)
	assert.Equal(t, uint64(GoerliChainID), loaded.Chain.ChainID)
	assert.Equal(t, 4, loaded.Chain.FetchConcurrency)
	assert.Equal(t, 90*time.Second, loaded.Chain.ConfirmTimeout)
	assert.Equal(t, "0.01", loaded.Deploy.Funding)
	assert.True(t, loaded.Indexer.Enabled)
	assert.Equal(t, filepath.Join(home, "data", "indexer.db"), loaded.IndexerDB())

	addr, err := loaded.Contracts.DAOAddress()
	require.NoError(t, err)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", addr.Hex())

	_, err = loaded.Contracts.NFTAddress()
	assert.ErrorIs(t, err, ErrMissingAddress)
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestValidateBasic(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	require.NoError(t, cfg.ValidateBasic())

	cfg.Contracts.NFT = "not-an-address"
	assert.ErrorIs(t, cfg.ValidateBasic(), ErrInvalidAddress)

	cfg = DefaultConfig(t.TempDir())
	cfg.Chain.FetchConcurrency = 0
	assert.Error(t, cfg.ValidateBasic())

	cfg = DefaultConfig(t.TempDir())
	cfg.Chain.ChainID = 0
	assert.Error(t, cfg.ValidateBasic())
}

func TestInitializeOwner(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())

	owner, err := InitializeOwner(cfg)
	require.NoError(t, err)
	_, err = os.Stat(cfg.KeyFile())
	require.NoError(t, err)

	// a second run keeps the existing key
	again, err := InitializeOwner(cfg)
	require.NoError(t, err)
	assert.Equal(t, owner, again)
}
