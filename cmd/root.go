package cmd

import (
	"fmt"
	"os"

	"folio/config"
	"folio/logging"

	"github.com/spf13/cobra"
)

var osExit = os.Exit

// options is the state shared by every subcommand.
type options struct {
	cfgFile string
	envFile string
	config  *config.Config
	logger  logging.Logger
}

// NewRootCommand builds the folio command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio and design-systems blog",
		Long: `folio serves a portfolio site with a Markdown blog, an RSS feed,
a sitemap and a contact form that forwards to an email provider.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initializeConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./folio.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newVersionCommand(),
		newContentCommand(opts),
		newSubmissionsCommand(opts),
	)
	return rootCmd
}

func (o *options) initializeConfig() error {
	bootstrap := logging.NewLogger("info")
	config.LoadEnv(bootstrap, o.envFile)

	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	o.config = cfg
	o.logger = logging.NewLogger(cfg.Log.Level)
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}
