package main

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/calehh/dao-app/client"
	"github.com/calehh/dao-app/config"
	"github.com/calehh/dao-app/indexer"
	"github.com/calehh/dao-app/wallet"
	cmtconfig "github.com/cometbft/cometbft/config"
	cmtflags "github.com/cometbft/cometbft/libs/cli/flags"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/ethclient"
)

func loadConfig(home string) (*config.Config, cmtlog.Logger, error) {
	cfg, err := config.Load(home)
	if err != nil {
		return nil, nil, err
	}
	logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
	logger, err = cmtflags.ParseLogLevel(cfg.LogLevel, logger, cmtconfig.DefaultLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	return cfg, logger, nil
}

// env is everything a session-backed command needs. close releases the
// node connection and the indexer.
type env struct {
	cfg     *config.Config
	logger  cmtlog.Logger
	cli     *ethclient.Client
	indexer *indexer.Indexer
	session *client.Session
}

func openEnv(ctx context.Context, home string) (*env, error) {
	cfg, logger, err := loadConfig(home)
	if err != nil {
		return nil, err
	}
	w, cli, err := wallet.Dial(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger, cli: cli}
	opts := []client.Option{
		client.WithAlert(func(msg string) { fmt.Fprintln(os.Stderr, msg) }),
		client.WithFetchConcurrency(cfg.Chain.FetchConcurrency),
	}
	if cfg.Indexer.Enabled {
		e.indexer, err = indexer.New(cfg.IndexerDB(), logger)
		if err != nil {
			cli.Close()
			return nil, fmt.Errorf("open indexer: %w", err)
		}
		opts = append(opts, client.WithRecorder(e.indexer))
	}
	chainID := new(big.Int).SetUint64(cfg.Chain.ChainID)
	e.session = client.NewSession(w, chainID, cfg.Chain.Network, logger, opts...)
	return e, nil
}

// connect is openEnv followed by Session.Connect.
func connect(ctx context.Context, home string) (*env, error) {
	e, err := openEnv(ctx, home)
	if err != nil {
		return nil, err
	}
	if err := e.session.Connect(ctx); err != nil {
		e.close()
		return nil, err
	}
	return e, nil
}

func (e *env) close() {
	if e.indexer != nil {
		if err := e.indexer.Close(); err != nil {
			e.logger.Error("close indexer fail", "err", err)
		}
	}
	e.cli.Close()
}

func writeConfig(cfg *config.Config) {
	config.WriteConfigFile(cfg.ConfigFile(), cfg)
}
