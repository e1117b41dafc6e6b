package server

import (
	"fmt"

	"github.com/mwantia/govportal/cmd/govportal/cli"
	"github.com/mwantia/govportal/internal/catalog"
	"github.com/spf13/cobra"
)

func NewSeedCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample catalog data",
		Long: `Insert sample projects, families and documents into the portal store.

Pending migrations are applied first. Seeding a store that already holds
the sample codes fails on the unique constraints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := cli.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}

			result, err := catalog.Seed(cmd.Context(), st, count)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d project(s), %d family(ies) and %d document(s).\n",
				result.Projects, result.Families, result.Documents)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 50, "number of sample projects")

	return cmd
}
