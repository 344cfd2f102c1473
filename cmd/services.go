package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolctl/internal/cli"
)

func newServicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the configured backend services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, store, err := newRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			services := store.Services()
			if len(services) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no services configured")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "environment: %s\n", store.Environment())
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderServiceTable(services))
			return nil
		},
	}
}
