package chain_test

import (
	"testing"

	"github.com/SafeMPC/onramp-service/internal/chain"
	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evmAddress = "0x7c2B4a91E6f3D0c58A1e9F4b3C6d2E8a5B0f1D47"

func TestFamilyOf(t *testing.T) {
	assert.Equal(t, chain.FamilyEVM, chain.FamilyOf("ethereum"))
	assert.Equal(t, chain.FamilyEVM, chain.FamilyOf(" Base "))
	assert.Equal(t, chain.FamilySolana, chain.FamilyOf("solana"))
	assert.Equal(t, chain.FamilyUnknown, chain.FamilyOf("bitcoin"))
}

func TestValidateAddressEVM(t *testing.T) {
	require.NoError(t, chain.ValidateAddress(evmAddress, []string{"ethereum", "base", "polygon"}))

	err := chain.ValidateAddress("0x1234", []string{"ethereum"})
	assert.ErrorIs(t, err, chain.ErrInvalidAddress)

	err = chain.ValidateAddress("7c2B4a91E6f3D0c58A1e9F4b3C6d2E8a5B0f1D47", []string{"base"})
	assert.ErrorIs(t, err, chain.ErrInvalidAddress)
}

func TestValidateAddressSolana(t *testing.T) {
	pubKey := make([]byte, 32)
	for i := range pubKey {
		pubKey[i] = byte(i + 1)
	}
	solAddress := base58.Encode(pubKey)

	require.NoError(t, chain.ValidateAddress(solAddress, []string{"solana"}))

	err := chain.ValidateAddress(evmAddress, []string{"solana"})
	assert.ErrorIs(t, err, chain.ErrInvalidAddress)

	err = chain.ValidateAddress(solAddress, []string{"solana", "ethereum"})
	assert.ErrorIs(t, err, chain.ErrInvalidAddress)
}

func TestValidateAddressUnknownChain(t *testing.T) {
	require.NoError(t, chain.ValidateAddress("bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", []string{"bitcoin"}))
	require.NoError(t, chain.ValidateAddress("anything", nil))
	assert.ErrorIs(t, chain.ValidateAddress("  ", []string{"bitcoin"}), chain.ErrEmptyAddress)
}
