package probe

import (
	"github.com/SafeMPC/onramp-service/internal/util/command"
	"github.com/spf13/cobra"
)

const (
	verboseFlag string = "verbose"
	urlFlag     string = "url"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}
