package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"toolctl/internal/config"
	"toolctl/internal/mcpclient"
	"toolctl/internal/registry"
	"toolctl/pkg/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toolctl",
	Short: "Drive backend tool services from the console",
	Long: `toolctl talks to the MCP tool services behind the service console:
it establishes sessions, invokes tools, and keeps sessions fresh when the
target environment changes.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed calls)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "toolctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newServicesCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

// newRegistry loads the configuration and builds the client registry every
// command works against. Clients are constructed here once, never per call.
func newRegistry() (*registry.ClientRegistry, *config.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logging.InitForCLI(logging.ParseLevel(cfg.GlobalSettings.LogLevel), os.Stderr)

	store := config.NewStore(cfg)

	timeout := cfg.GlobalSettings.CallTimeout
	if timeout <= 0 {
		timeout = config.DefaultCallTimeout
	}
	version := rootCmd.Version
	if version == "" {
		version = "dev"
	}
	reg := registry.New(store,
		mcpclient.WithTimeout(timeout),
		mcpclient.WithClientInfo(mcpclient.Implementation{Name: "toolctl", Version: version}),
	)
	return reg, store, nil
}
