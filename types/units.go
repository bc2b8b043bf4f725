package types

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

const etherDecimals = 18

var ErrInvalidEtherAmount = errors.New("invalid ether amount")

// FormatEther renders wei as a decimal ether string with trailing zeros
// trimmed but always at least one fractional digit: 0 -> "0.0".
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	neg := wei.Sign() < 0
	abs := new(big.Int).Abs(wei)
	whole, frac := new(big.Int).QuoRem(abs, big.NewInt(params.Ether), new(big.Int))

	fs := frac.String()
	fs = strings.Repeat("0", etherDecimals-len(fs)) + fs
	fs = strings.TrimRight(fs, "0")
	if fs == "" {
		fs = "0"
	}
	s := whole.String() + "." + fs
	if neg {
		s = "-" + s
	}
	return s
}

// ParseEther converts a decimal ether string such as "0.01" into wei.
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return nil, ErrInvalidEtherAmount
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > etherDecimals {
		return nil, ErrInvalidEtherAmount
	}
	if whole == "" {
		whole = "0"
	}
	digits := whole + frac + strings.Repeat("0", etherDecimals-len(frac))
	wei, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, ErrInvalidEtherAmount
	}
	return wei, nil
}
