package server

import (
	"fmt"

	"github.com/mwantia/govportal/internal/agent"
	"github.com/spf13/cobra"

	config "github.com/mwantia/govportal/internal/config/server"
)

func NewAgentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Start the portal back office agent",
		Long: `Start the portal back office agent.

The agent opens and migrates the portal store, then serves the table
session API over HTTP until it is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			return agent.NewAgent(cfg).Serve(cmd.Context())
		},
	}

	return cmd
}
