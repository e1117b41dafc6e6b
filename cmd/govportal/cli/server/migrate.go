package server

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mwantia/govportal/cmd/govportal/cli"
	"github.com/mwantia/govportal/pkg/db/migrations"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage portal store migrations",
	}

	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateDownCommand())
	cmd.AddCommand(newMigrateStatusCommand())

	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := cli.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := cli.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := migrations.NewMigrator(st.DB()).Rollback(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Last migration rolled back.")
			return nil
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which migrations are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := cli.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			statuses, err := migrations.NewMigrator(st.DB()).Status(cmd.Context())
			if err != nil {
				return err
			}

			var sb strings.Builder
			w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tAPPLIED\tDESCRIPTION")
			for _, s := range statuses {
				fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, s.Description)
			}
			w.Flush()

			fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return nil
		},
	}
}
