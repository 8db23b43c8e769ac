// Package chain knows which address format each supported blockchain uses.
package chain

import (
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Family groups blockchains sharing one address format.
type Family string

const (
	FamilyEVM     Family = "evm"
	FamilySolana  Family = "solana"
	FamilyUnknown Family = "unknown"
)

const solanaPublicKeyLength = 32

var (
	ErrEmptyAddress   = errors.New("address is empty")
	ErrInvalidAddress = errors.New("address is not valid for blockchain")
)

var families = map[string]Family{
	"ethereum":          FamilyEVM,
	"base":              FamilyEVM,
	"optimism":          FamilyEVM,
	"arbitrum":          FamilyEVM,
	"polygon":           FamilyEVM,
	"avalanche-c-chain": FamilyEVM,
	"bnb-chain":         FamilyEVM,
	"celo":              FamilyEVM,
	"zksync":            FamilyEVM,
	"solana":            FamilySolana,
}

// FamilyOf returns the address family of a chain identifier. Identifiers are matched
// case-insensitively; chains we do not know are FamilyUnknown.
func FamilyOf(blockchain string) Family {
	if f, ok := families[strings.ToLower(strings.TrimSpace(blockchain))]; ok {
		return f
	}
	return FamilyUnknown
}

// ValidateAddress checks address against the format of every listed blockchain.
// Unknown chains only require a non-empty address.
func ValidateAddress(address string, blockchains []string) error {
	if strings.TrimSpace(address) == "" {
		return ErrEmptyAddress
	}

	for _, b := range blockchains {
		var ok bool
		switch FamilyOf(b) {
		case FamilyEVM:
			ok = isEVMAddress(address)
		case FamilySolana:
			ok = isSolanaAddress(address)
		default:
			ok = true
		}

		if !ok {
			return errors.Wrapf(ErrInvalidAddress, "%q on %s", address, b)
		}
	}

	return nil
}

func isEVMAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}

// Solana addresses are base58 encoded ed25519 public keys.
func isSolanaAddress(address string) bool {
	return len(base58.Decode(address)) == solanaPublicKeyLength
}
