package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// NFT is the membership collection. Holding at least one token is what
// allows an account to create and vote on proposals.
type NFT struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewNFT(address common.Address, backend bind.ContractBackend) (*NFT, error) {
	contract, err := bindContract(address, NFTABI, backend)
	if err != nil {
		return nil, err
	}
	return &NFT{address: address, contract: contract}, nil
}

func (n *NFT) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	var out []interface{}
	err := n.contract.Call(opts, &out, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

type Marketplace struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewMarketplace(address common.Address, backend bind.ContractBackend) (*Marketplace, error) {
	contract, err := bindContract(address, MarketplaceABI, backend)
	if err != nil {
		return nil, err
	}
	return &Marketplace{address: address, contract: contract}, nil
}

func (m *Marketplace) GetPrice(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := m.contract.Call(opts, &out, "getPrice")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (m *Marketplace) Available(opts *bind.CallOpts, tokenId *big.Int) (bool, error) {
	var out []interface{}
	err := m.contract.Call(opts, &out, "available", tokenId)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}
