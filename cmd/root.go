package cmd

import (
	"fmt"
	"os"

	"github.com/SafeMPC/onramp-service/cmd/probe"
	"github.com/SafeMPC/onramp-service/cmd/session"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "app",
	Short:   "onramp-service",
	Long:    `Issues Coinbase Developer Platform onramp session tokens, falling back to locally built tokens when CDP is unavailable.`,
	Version: config.GetFormattedBuildArgs(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(
		newServerCommand(),
		newEnvCommand(),
		probe.New(),
		session.New(),
	)
}
