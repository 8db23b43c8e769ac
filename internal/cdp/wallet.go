package cdp

import (
	"github.com/SafeMPC/onramp-service/internal/config"
)

// DestinationWallet is where Coinbase Onramp delivers purchased assets.
type DestinationWallet struct {
	Address     string   `json:"address"`
	Blockchains []string `json:"blockchains"`
	Assets      []string `json:"assets,omitempty"`
}

// DefaultDestinationWallet returns the operator wallet used when the caller names none.
func DefaultDestinationWallet(cfg config.Onramp) DestinationWallet {
	return DestinationWallet{
		Address:     cfg.DefaultAddress,
		Blockchains: append([]string(nil), cfg.DefaultBlockchains...),
		Assets:      append([]string(nil), cfg.DefaultAssets...),
	}
}
