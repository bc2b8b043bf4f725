package contracts

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// DAOProposal is the raw tuple returned by proposals(uint256).
type DAOProposal struct {
	NftTokenId *big.Int
	Deadline   *big.Int
	YayVotes   *big.Int
	NayVotes   *big.Int
	Executed   bool
}

type DAO struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewDAO(address common.Address, backend bind.ContractBackend) (*DAO, error) {
	contract, err := bindContract(address, DAOABI, backend)
	if err != nil {
		return nil, err
	}
	return &DAO{address: address, contract: contract}, nil
}

func (d *DAO) Address() common.Address {
	return d.address
}

func (d *DAO) NumProposals(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := d.contract.Call(opts, &out, "numProposals")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (d *DAO) Proposals(opts *bind.CallOpts, id *big.Int) (DAOProposal, error) {
	var out []interface{}
	err := d.contract.Call(opts, &out, "proposals", id)
	if err != nil {
		return DAOProposal{}, err
	}
	var p DAOProposal
	p.NftTokenId = *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	p.Deadline = *abi.ConvertType(out[1], new(*big.Int)).(**big.Int)
	p.YayVotes = *abi.ConvertType(out[2], new(*big.Int)).(**big.Int)
	p.NayVotes = *abi.ConvertType(out[3], new(*big.Int)).(**big.Int)
	p.Executed = *abi.ConvertType(out[4], new(bool)).(*bool)
	return p, nil
}

func (d *DAO) CreateProposal(opts *bind.TransactOpts, nftTokenId *big.Int) (*ethtypes.Transaction, error) {
	return d.contract.Transact(opts, "createProposal", nftTokenId)
}

func (d *DAO) VoteOnProposal(opts *bind.TransactOpts, proposalIndex *big.Int, vote uint8) (*ethtypes.Transaction, error) {
	return d.contract.Transact(opts, "voteOnProposal", proposalIndex, vote)
}

func (d *DAO) ExecuteProposal(opts *bind.TransactOpts, proposalIndex *big.Int) (*ethtypes.Transaction, error) {
	return d.contract.Transact(opts, "executeProposal", proposalIndex)
}

func bindContract(address common.Address, abiJSON string, backend bind.ContractBackend) (*bind.BoundContract, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(address, parsed, backend, backend, backend), nil
}
