package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolctl/internal/cli"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools <service>",
		Short: "List the tools a backend service offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := newRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			client, err := reg.GetClient(args[0])
			if err != nil {
				return err
			}

			tools, err := client.ListTools(cmd.Context())
			if err != nil {
				return err
			}
			if len(tools) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "service %s offers no tools\n", args[0])
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderToolTable(tools))
			return nil
		},
	}
}
