package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const livenessTimeout = 5 * time.Second

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `This command calls the health endpoint of a running service.
It fails unless the service answers with status "ok".`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				fmt.Printf("Error while parsing flags: %v\n", err)
				os.Exit(1)
			}

			baseURL, err := cmd.Flags().GetString(urlFlag)
			if err != nil {
				fmt.Printf("Error while parsing flags: %v\n", err)
				os.Exit(1)
			}

			runLiveness(baseURL, verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")
	cmd.Flags().String(urlFlag, "", "Base URL of the service (defaults to SERVER_ECHO_BASE_URL).")

	return cmd
}

func runLiveness(baseURL string, verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()
	util.ConfigureGlobalLogger(cfg.Logger.Level, cfg.Logger.PrettyPrintConsole, cfg.Logger.LogCaller)

	if len(baseURL) == 0 {
		baseURL = cfg.Echo.BaseURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), livenessTimeout)
	defer cancel()

	health, err := probeHealth(ctx, http.DefaultClient, baseURL)
	if err != nil {
		log.Fatal().Err(err).Str("url", baseURL).Msg("Liveness probe failed")
	}

	if verbose {
		log.Info().
			Bool("configured", swag.BoolValue(health.Configured)).
			Str("version", health.Version).
			Msg("Liveness probe successful")
	}
}

func probeHealth(ctx context.Context, client *http.Client, baseURL string) (*types.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/api/health", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create health request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call health endpoint")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("health endpoint returned status %d", res.StatusCode)
	}

	var health types.HealthResponse
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		return nil, errors.Wrap(err, "failed to decode health response")
	}

	if err := health.Validate(strfmt.Default); err != nil {
		return nil, errors.Wrap(err, "invalid health response")
	}

	if swag.StringValue(health.Status) != "ok" {
		return nil, errors.Errorf("service reports status %q", swag.StringValue(health.Status))
	}

	return &health, nil
}
