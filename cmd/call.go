package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"toolctl/internal/cli"
	"toolctl/internal/mcpclient"
)

func newCallCmd() *cobra.Command {
	var (
		argsJSON  string
		authToken string
		copyOut   bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "call <service> <tool>",
		Short: "Invoke a tool on a backend service",
		Long: `Invokes a named tool on one of the configured backend services.
The session handshake happens automatically on the first call and is
re-established transparently if the server reports the session gone.

Tool arguments are passed as a JSON object via --args and forwarded
verbatim; toolctl does not interpret them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, tool := args[0], args[1]

			var toolArgs map[string]any
			if err := json.Unmarshal([]byte(argsJSON), &toolArgs); err != nil {
				return fmt.Errorf("--args must be a JSON object: %w", err)
			}

			reg, _, err := newRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			client, err := reg.GetClient(service)
			if err != nil {
				return err
			}

			var opts []mcpclient.CallOption
			if authToken != "" {
				opts = append(opts, mcpclient.WithBearerToken(authToken))
			}
			result, err := client.CallTool(cmd.Context(), tool, toolArgs, opts...)
			if err != nil {
				return err
			}

			out, err := cli.FormatResult(result, cli.OutputFormat(format))
			if err != nil {
				return err
			}
			if copyOut {
				if err := clipboard.WriteAll(out); err != nil {
					return fmt.Errorf("copying result to clipboard: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&argsJSON, "args", "{}", "tool arguments as a JSON object")
	cmd.Flags().StringVar(&authToken, "auth-token", "", "bearer token forwarded to the service")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the result to the clipboard")
	cmd.Flags().StringVarP(&format, "output", "o", "json", "output format (json, yaml, text)")

	return cmd
}
