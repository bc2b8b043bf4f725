package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var ErrEmptyBytecode = errors.New("artifact has no bytecode")

// Artifact is a compiled contract as emitted by hardhat under
// artifacts/contracts/<Name>.sol/<Name>.json.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
}

type artifactSt struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

func ParseArtifact(dat []byte) (*Artifact, error) {
	var o artifactSt
	if err := json.Unmarshal(dat, &o); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	parsed, err := abi.JSON(bytes.NewReader(o.ABI))
	if err != nil {
		return nil, fmt.Errorf("decode artifact abi: %w", err)
	}
	if !has0xPrefix(o.Bytecode) {
		return nil, fmt.Errorf("decode artifact bytecode: %w", hexutil.ErrMissingPrefix)
	}
	code := common.FromHex(o.Bytecode)
	if len(code) == 0 {
		return nil, ErrEmptyBytecode
	}
	return &Artifact{
		ContractName: o.ContractName,
		ABI:          parsed,
		Bytecode:     code,
	}, nil
}

func LoadArtifact(path string) (*Artifact, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := ParseArtifact(dat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
