package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	eth_crypto "github.com/ethereum/go-ethereum/crypto"
)

var ErrKeyFileExists = errors.New("key file already exists")

// Key is the session's signing key. It never leaves the process; only the
// address and transactors derived from it are handed out.
type Key struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

func NewKey(priv *ecdsa.PrivateKey) *Key {
	return &Key{
		privateKey: priv,
		address:    eth_crypto.PubkeyToAddress(priv.PublicKey),
	}
}

func GenerateKey() (*Key, error) {
	priv, err := eth_crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return NewKey(priv), nil
}

// LoadKeyFile reads a hex encoded secp256k1 private key, with or without a
// 0x prefix.
func LoadKeyFile(keyFilePath string) (*Key, error) {
	dat, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(string(dat))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	priv, err := eth_crypto.HexToECDSA(s)
	if err != nil {
		return nil, fmt.Errorf("error reading private key from %v: %w", keyFilePath, err)
	}
	return NewKey(priv), nil
}

// SaveKeyFile writes the key hex encoded. An existing file is never
// overwritten.
func (k *Key) SaveKeyFile(keyFilePath string) error {
	if _, err := os.Stat(keyFilePath); err == nil {
		return ErrKeyFileExists
	}
	if err := os.MkdirAll(filepath.Dir(keyFilePath), 0o700); err != nil {
		return fmt.Errorf("could not create directory %q: %w", filepath.Dir(keyFilePath), err)
	}
	key := hex.EncodeToString(eth_crypto.FromECDSA(k.privateKey))
	return os.WriteFile(keyFilePath, []byte(key), 0o600)
}

func (k *Key) Address() common.Address {
	return k.address
}

func (k *Key) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(k.privateKey, chainID)
}
