package probe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/SafeMPC/onramp-service/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const readinessTimeout = 5 * time.Second

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `This command checks the readiness of the service.
It resolves the CDP credentials and signs a throwaway assertion with them.
CDP is never called.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				fmt.Printf("Error while parsing flags: %v\n", err)
				os.Exit(1)
			}

			runReadiness(verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func runReadiness(verbose bool) {
	err := command.WithServer(context.Background(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
		log := util.LogFromContext(ctx)

		ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
		defer cancel()

		if err := s.CDP.Probe(ctx); err != nil {
			return err
		}

		if verbose {
			log.Info().Msg("All readiness probes successful")
		}

		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Readiness probe failed")
	}
}
