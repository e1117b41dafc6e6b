package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCommand(info VersionInfo) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "govportal",
		Short:         "Government portal back office",
		Long:          "Back office agent and tooling for the bilingual government portal: interactive catalog tables, bulk actions and the portal store.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(path)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&path, "config", "", "config file (default is ./config.yaml)")
	flags.Bool("no-color", false, "Disables colored command output")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("database", "", "path of the SQLite portal store (overrides database.sqlite.path)")

	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.no_color", flags.Lookup("no-color"))
	viper.BindPFlag("database.sqlite.path", flags.Lookup("database"))

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}
