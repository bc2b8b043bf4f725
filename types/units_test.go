package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEther(t *testing.T) {
	tenFinney, _ := new(big.Int).SetString("10000000000000000", 10)
	oneAndHalf, _ := new(big.Int).SetString("1500000000000000000", 10)

	assert.Equal(t, "0.0", FormatEther(big.NewInt(0)))
	assert.Equal(t, "0.0", FormatEther(nil))
	assert.Equal(t, "0.01", FormatEther(tenFinney))
	assert.Equal(t, "1.5", FormatEther(oneAndHalf))
	assert.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
	assert.Equal(t, "-1.5", FormatEther(new(big.Int).Neg(oneAndHalf)))
}

func TestParseEther(t *testing.T) {
	wei, err := ParseEther("0.01")
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000", wei.String())

	wei, err = ParseEther("2")
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", wei.String())

	wei, err = ParseEther(".5")
	require.NoError(t, err)
	assert.Equal(t, "0.5", FormatEther(wei))

	for _, bad := range []string{"", "-1", "abc", "1.0000000000000000001", "1.2.3"} {
		_, err := ParseEther(bad)
		assert.ErrorIs(t, err, ErrInvalidEtherAmount, bad)
	}
}
