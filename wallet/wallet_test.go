package wallet

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/calehh/dao-app/client"
	"github.com/calehh/dao-app/crypto"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDAO = common.HexToAddress("0x00000000000000000000000000000000000000da")
	testNFT = common.HexToAddress("0x00000000000000000000000000000000000000ff")
)

func newSimWallet(t *testing.T) (*Wallet, *simulated.Backend, *crypto.Key) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	funds := new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))
	sim := simulated.NewBackend(ethtypes.GenesisAlloc{
		key.Address(): {Balance: funds},
		testDAO:       {Balance: big.NewInt(params.Ether / 100)},
	})
	t.Cleanup(func() { sim.Close() })

	w, err := New(sim.Client(), key, big.NewInt(1337), Addresses{DAO: testDAO, NFT: testNFT}, 10*time.Second, cmtlog.NewNopLogger())
	require.NoError(t, err)
	return w, sim, key
}

func TestWalletReads(t *testing.T) {
	w, _, key := newSimWallet(t)
	ctx := context.Background()

	id, err := w.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1337), id.Int64())
	assert.Equal(t, key.Address(), w.Address())

	bal, err := w.TreasuryBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(params.Ether/100), bal)
}

func TestWalletNoCode(t *testing.T) {
	w, _, _ := newSimWallet(t)
	_, err := w.ProposalCount(context.Background())
	assert.ErrorIs(t, err, bind.ErrNoCode)
}

func TestWalletMarketplaceNotConfigured(t *testing.T) {
	w, _, _ := newSimWallet(t)
	ctx := context.Background()
	_, err := w.NFTPrice(ctx)
	assert.ErrorIs(t, err, client.ErrMarketplaceNotConfigured)
	_, err = w.NFTAvailable(ctx, big.NewInt(1))
	assert.ErrorIs(t, err, client.ErrMarketplaceNotConfigured)
}

func TestWaitConfirmed(t *testing.T) {
	w, sim, key := newSimWallet(t)
	ctx := context.Background()
	cli := sim.Client()

	nonce, err := cli.PendingNonceAt(ctx, key.Address())
	require.NoError(t, err)
	gasPrice, err := cli.SuggestGasPrice(ctx)
	require.NoError(t, err)
	tx := ethtypes.NewTransaction(nonce, testDAO, big.NewInt(1), 21000, gasPrice, nil)

	opts, err := key.Transactor(big.NewInt(1337))
	require.NoError(t, err)
	signed, err := opts.Signer(key.Address(), tx)
	require.NoError(t, err)
	require.NoError(t, cli.SendTransaction(ctx, signed))
	sim.Commit()

	s, err := w.Signer()
	require.NoError(t, err)
	receipt, err := s.WaitConfirmed(ctx, signed)
	require.NoError(t, err)
	assert.Equal(t, ethtypes.ReceiptStatusSuccessful, receipt.Status)

	bal, err := w.TreasuryBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(params.Ether/100+1), bal)
}

func TestWaitConfirmedTimeout(t *testing.T) {
	w, _, key := newSimWallet(t)
	w.confirmTimeout = 50 * time.Millisecond
	tx := ethtypes.NewTransaction(0, testDAO, big.NewInt(1), 21000, big.NewInt(1), nil)
	opts, err := key.Transactor(big.NewInt(1337))
	require.NoError(t, err)
	signed, err := opts.Signer(key.Address(), tx)
	require.NoError(t, err)

	s, err := w.Signer()
	require.NoError(t, err)
	_, err = s.WaitConfirmed(context.Background(), signed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
