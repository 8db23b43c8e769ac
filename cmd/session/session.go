package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SafeMPC/onramp-service/internal/cdp"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/go-openapi/swag"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	urlFlag        = "url"
	addressFlag    = "address"
	blockchainFlag = "blockchain"
	assetFlag      = "asset"
	timeoutFlag    = "timeout"
)

type options struct {
	baseURL     string
	addresses   []string
	blockchains []string
	assets      []string
	timeout     time.Duration
}

func New() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Requests a session token from a running service",
		Long: `Requests an onramp session token from a running service and prints the response.

Fallback tokens are decoded and their destination wallets printed, real CDP tokens are opaque.
Without --address the service uses its default destination wallet.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			util.ConfigureGlobalLogger(cfg.Logger.Level, cfg.Logger.PrettyPrintConsole, cfg.Logger.LogCaller)

			if len(opts.baseURL) == 0 {
				opts.baseURL = cfg.Echo.BaseURL
			}

			if err := runSession(cmd.Context(), os.Stdout, opts); err != nil {
				log.Fatal().Err(err).Str("url", opts.baseURL).Msg("Failed to request session token")
			}
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, urlFlag, "", "Base URL of the service (defaults to SERVER_ECHO_BASE_URL).")
	cmd.Flags().StringSliceVar(&opts.addresses, addressFlag, nil, "Destination address, repeatable.")
	cmd.Flags().StringSliceVar(&opts.blockchains, blockchainFlag, nil, "Blockchain filter, repeatable.")
	cmd.Flags().StringSliceVar(&opts.assets, assetFlag, nil, "Asset filter, repeatable.")
	cmd.Flags().DurationVar(&opts.timeout, timeoutFlag, 30*time.Second, "Request timeout.")

	return cmd
}

func runSession(ctx context.Context, out io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	client := NewClient(opts.baseURL, opts.timeout)

	response, err := client.PostSession(ctx, newPayload(opts))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(response); err != nil {
		return fmt.Errorf("failed to print response: %w", err)
	}

	if !response.Fallback {
		return nil
	}

	log.Warn().Str("env", response.Env).Str("reason", response.Error).Msg("Service returned a fallback token, Coinbase will not accept it")

	payload, err := cdp.DecodeFallbackToken(swag.StringValue(response.Token))
	if err != nil {
		return fmt.Errorf("failed to decode fallback token: %w", err)
	}

	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to print fallback payload: %w", err)
	}

	return nil
}

func newPayload(opts *options) *types.PostSessionPayload {
	payload := &types.PostSessionPayload{
		Blockchains: opts.blockchains,
		Assets:      opts.assets,
	}

	for _, address := range opts.addresses {
		payload.Addresses = append(payload.Addresses, &types.SessionAddress{
			Address: swag.String(address),
		})
	}

	return payload
}
