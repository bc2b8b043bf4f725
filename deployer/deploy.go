package deployer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/calehh/dao-app/contracts"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// ContractDeployer sends a contract creation and waits for its code to
// land on chain.
type ContractDeployer interface {
	DeployContract(ctx context.Context, artifact *contracts.Artifact, value *big.Int, params ...interface{}) (common.Address, *ethtypes.Transaction, error)
	WaitDeployed(ctx context.Context, tx *ethtypes.Transaction) (common.Address, error)
}

type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type EthDeployer struct {
	backend Backend
	opts    *bind.TransactOpts
}

var _ ContractDeployer = &EthDeployer{}

func NewEthDeployer(backend Backend, opts *bind.TransactOpts) *EthDeployer {
	return &EthDeployer{backend: backend, opts: opts}
}

func (d *EthDeployer) DeployContract(ctx context.Context, artifact *contracts.Artifact, value *big.Int, params ...interface{}) (common.Address, *ethtypes.Transaction, error) {
	opts := *d.opts
	opts.Context = ctx
	opts.Value = value
	addr, tx, _, err := bind.DeployContract(&opts, artifact.ABI, artifact.Bytecode, d.backend, params...)
	return addr, tx, err
}

func (d *EthDeployer) WaitDeployed(ctx context.Context, tx *ethtypes.Transaction) (common.Address, error) {
	return bind.WaitDeployed(ctx, d.backend, tx)
}

type Request struct {
	Marketplace *contracts.Artifact
	DAO         *contracts.Artifact
	NFT         common.Address
	Funding     *big.Int
}

type Result struct {
	Marketplace common.Address
	DAO         common.Address
}

// Deploy deploys the marketplace, then the DAO pointing at it and at the
// NFT collection, sending Funding along with the DAO constructor. Each
// step waits for the previous one. The first failure aborts the run.
func Deploy(ctx context.Context, d ContractDeployer, req Request, logger cmtlog.Logger) (*Result, error) {
	logger = logger.With("module", "deployer")
	funding := req.Funding
	if funding == nil {
		funding = new(big.Int)
	}

	_, tx, err := d.DeployContract(ctx, req.Marketplace, nil)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w", req.Marketplace.ContractName, err)
	}
	logger.Info("contract sent", "name", req.Marketplace.ContractName, "hash", tx.Hash())
	marketAddr, err := d.WaitDeployed(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("wait %s: %w", req.Marketplace.ContractName, err)
	}
	logger.Info("contract deployed", "name", req.Marketplace.ContractName, "address", marketAddr)

	_, tx, err = d.DeployContract(ctx, req.DAO, funding, marketAddr, req.NFT)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w", req.DAO.ContractName, err)
	}
	logger.Info("contract sent", "name", req.DAO.ContractName, "hash", tx.Hash(), "value", funding)
	daoAddr, err := d.WaitDeployed(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("wait %s: %w", req.DAO.ContractName, err)
	}
	logger.Info("contract deployed", "name", req.DAO.ContractName, "address", daoAddr)

	return &Result{Marketplace: marketAddr, DAO: daoAddr}, nil
}
