package cli

import (
	"os"

	"github.com/spf13/cobra"

	cfg "github.com/NovantaCreativeTeam/pracsi-script/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		Run:   runConfig,
	}

	RootCmd.AddCommand(cmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	conf, _, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if err := cfg.Dump(os.Stdout, conf); err != nil {
		exitErr("dump config", err)
	}
}
