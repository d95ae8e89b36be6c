// Package cli holds the cobra commands behind the dares binary.
package cli

import (
	"time"

	"dareboard/internal/client"
	"dareboard/internal/config"
	"dareboard/internal/logging"
	"dareboard/internal/output"

	"github.com/spf13/cobra"
)

// Version is set via ldflags during build.
var Version = "dev"

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfg       config.Cfg
	client    *client.HTTPClient
	formatter *output.Formatter

	// global flags
	outputFmt string
	noHeaders bool
	apiURL    string
	token     string
	debug     bool
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dares",
		Short: "Browse dares, acts and feeds from the command line",
		Long: `dares pages through the platform API the same way the app does.

Examples:
  dares list --difficulty edge --limit 10
  dares scroll --pages 3 -o json
  dares get 42`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.outputFmt, "output", "o", "table",
		"output format: table, json, yaml")
	root.PersistentFlags().BoolVar(&a.noHeaders, "no-headers", false,
		"hide table headers")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "",
		"API base URL (default from API_BASE_URL)")
	root.PersistentFlags().StringVar(&a.token, "token", "",
		"bearer token (default from API_TOKEN)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false,
		"enable debug logging")

	root.AddCommand(a.listCmd())
	root.AddCommand(a.actsCmd())
	root.AddCommand(a.scrollCmd())
	root.AddCommand(a.getCmd())
	return root
}

// setup loads config, applies flag overrides and builds the shared client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = config.Load()
	if a.apiURL != "" {
		a.cfg.API.BaseURL = a.apiURL
	}
	if a.token != "" {
		a.cfg.API.Token = a.token
	}
	if a.debug {
		a.cfg.App.LogLevel = "debug"
	}
	logging.Setup(a.cfg.App.Env, a.cfg.App.LogLevel)

	if err := a.cfg.Validate(false); err != nil {
		return err
	}

	a.client = client.NewHTTPClient("cli", a.cfg.API.TimeoutSec)
	a.client.SetBaseURL(a.cfg.API.BaseURL)
	a.client.SetToken(a.cfg.API.Token)
	a.client.SetRetry(a.cfg.API.MaxRetries, 200*time.Millisecond)

	format, err := output.ParseFormat(a.outputFmt)
	if err != nil {
		return err
	}
	a.formatter = output.NewFormatter(format, a.noHeaders)
	a.formatter.Writer = cmd.OutOrStdout()
	a.formatter.ErrWriter = cmd.ErrOrStderr()
	return nil
}
