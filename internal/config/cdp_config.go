package config

import "time"

const (
	DefaultCDPBaseURL   = "https://api.developer.coinbase.com"
	DefaultCDPTokenPath = "/onramp/v1/token"

	// DefaultOperatorAddress receives onramp funds when the caller names no destination.
	DefaultOperatorAddress = "0x7c2B4a91E6f3D0c58A1e9F4b3C6d2E8a5B0f1D47"
)

// CDP holds the Coinbase Developer Platform settings. Every credential field is optional
// and substitutes independently into the resolved credentials.
type CDP struct {
	BaseURL   string
	TokenPath string

	ProjectID      string
	OrganizationID string
	APIKeyID       string
	APISecret      string `json:"-"`
	KeyName        string

	// KeyFile points to a JSON file of the form {"id": "...", "privateKey": "..."}.
	KeyFile string

	RequestTimeout time.Duration
}

type Onramp struct {
	DefaultAddress     string
	DefaultBlockchains []string
	DefaultAssets      []string
}

func DefaultBlockchains() []string {
	return []string{"ethereum", "base", "optimism", "arbitrum", "polygon"}
}

func DefaultAssets() []string {
	return []string{"ETH", "USDC", "USDT", "DAI"}
}
