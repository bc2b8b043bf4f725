package deployer

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/calehh/dao-app/contracts"
	"github.com/calehh/dao-app/crypto"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// init code that deploys a one byte runtime
var testBytecode = common.FromHex("0x600060005360016000f3")

func testArtifacts(t *testing.T) (*contracts.Artifact, *contracts.Artifact) {
	marketABI, err := abi.JSON(strings.NewReader(contracts.MarketplaceABI))
	require.NoError(t, err)
	daoABI, err := abi.JSON(strings.NewReader(contracts.DAOABI))
	require.NoError(t, err)
	return &contracts.Artifact{ContractName: "FakeNFTMarketplace", ABI: marketABI, Bytecode: testBytecode},
		&contracts.Artifact{ContractName: "CryptoDevsDAO", ABI: daoABI, Bytecode: testBytecode}
}

type deployCall struct {
	name   string
	value  *big.Int
	params []interface{}
}

type fakeDeployer struct {
	calls  []deployCall
	waits  int
	failAt int
}

func (f *fakeDeployer) DeployContract(ctx context.Context, artifact *contracts.Artifact, value *big.Int, params ...interface{}) (common.Address, *ethtypes.Transaction, error) {
	f.calls = append(f.calls, deployCall{name: artifact.ContractName, value: value, params: params})
	if f.failAt == len(f.calls) {
		return common.Address{}, nil, errors.New("insufficient funds")
	}
	tx := ethtypes.NewContractCreation(uint64(len(f.calls)), value, 0, big.NewInt(0), artifact.Bytecode)
	return common.Address{}, tx, nil
}

func (f *fakeDeployer) WaitDeployed(ctx context.Context, tx *ethtypes.Transaction) (common.Address, error) {
	f.waits++
	return common.BytesToAddress([]byte{byte(f.waits)}), nil
}

func TestDeployOrder(t *testing.T) {
	market, dao := testArtifacts(t)
	nft := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	funding := big.NewInt(params.Ether / 100)
	f := &fakeDeployer{}

	res, err := Deploy(context.Background(), f, Request{Marketplace: market, DAO: dao, NFT: nft, Funding: funding}, cmtlog.NewNopLogger())
	require.NoError(t, err)
	require.Len(t, f.calls, 2)
	assert.Equal(t, "FakeNFTMarketplace", f.calls[0].name)
	assert.Empty(t, f.calls[0].params)
	assert.Equal(t, "CryptoDevsDAO", f.calls[1].name)
	assert.Equal(t, funding, f.calls[1].value)
	assert.Equal(t, []interface{}{res.Marketplace, nft}, f.calls[1].params)
	assert.Equal(t, common.BytesToAddress([]byte{1}), res.Marketplace)
	assert.Equal(t, common.BytesToAddress([]byte{2}), res.DAO)
}

func TestDeployAbortsOnFailure(t *testing.T) {
	market, dao := testArtifacts(t)
	f := &fakeDeployer{failAt: 1}
	_, err := Deploy(context.Background(), f, Request{Marketplace: market, DAO: dao}, cmtlog.NewNopLogger())
	require.Error(t, err)
	assert.Len(t, f.calls, 1)
	assert.Equal(t, 0, f.waits)
}

func TestDeploySimulated(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	funds := new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))
	sim := simulated.NewBackend(ethtypes.GenesisAlloc{key.Address(): {Balance: funds}})
	defer sim.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				sim.Commit()
			}
		}
	}()

	opts, err := key.Transactor(big.NewInt(1337))
	require.NoError(t, err)
	market, dao := testArtifacts(t)
	funding := big.NewInt(params.Ether / 100)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := Deploy(ctx, NewEthDeployer(sim.Client(), opts), Request{
		Marketplace: market,
		DAO:         dao,
		NFT:         common.HexToAddress("0x00000000000000000000000000000000000000ff"),
		Funding:     funding,
	}, cmtlog.NewNopLogger())
	require.NoError(t, err)
	assert.NotEqual(t, res.Marketplace, res.DAO)

	bal, err := sim.Client().BalanceAt(ctx, res.DAO, nil)
	require.NoError(t, err)
	assert.Equal(t, funding, bal)
}
