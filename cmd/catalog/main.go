package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/catalog/internal/api"
	"github.com/studiowebux/catalog/internal/cli"
	"github.com/studiowebux/catalog/internal/config"
	"github.com/studiowebux/catalog/internal/history"
	"github.com/studiowebux/catalog/internal/keybinds"
	"github.com/studiowebux/catalog/internal/logging"
	"github.com/studiowebux/catalog/internal/server"
	"github.com/studiowebux/catalog/internal/tui"
	"github.com/studiowebux/catalog/internal/types"
	"go.uber.org/zap"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog - product catalog terminal client",
	Long: `Catalog manages the products of a REST products API.

Run without arguments to start the interactive TUI, or use a subcommand for
scripting.

Examples:
  catalog                                  # Start interactive TUI
  catalog list -o json -q '[].name'        # Product names as JSON
  catalog get 1 3                          # Fetch several products
  catalog create -n Pen -d "Blue ink" -P 1.5
  catalog update 3 -P 299.99               # Change only the price
  catalog delete 3                         # Asks for confirmation
  catalog serve --port 8080                # Demo products API`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(true)
		if err != nil {
			return err
		}
		defer a.Close()

		registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
		if err != nil {
			return err
		}

		return tui.Run(cmd.Context(), tui.Options{
			Client:              a.client,
			History:             a.history,
			Keybinds:            registry,
			Logger:              a.logger,
			NotificationTimeout: a.cfg.NotificationTimeout,
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(false)
		if err != nil {
			return err
		}
		defer a.Close()

		return cli.List(cmd.Context(), a.env(), cli.ListOptions{
			Output: flagOutput,
			Search: flagSearch,
			Filter: flagFilter,
			Query:  flagQuery,
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id...]",
	Short: "Show one or more products (pick interactively without ids)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(false)
		if err != nil {
			return err
		}
		defer a.Close()

		ids, err := idsOrPick(cmd.Context(), a, args, "Select a product")
		if err != nil {
			return err
		}
		return cli.Get(cmd.Context(), a.env(), ids, flagOutput)
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a product",
	Long:  "Add a product. --name and --price are required; --description is optional.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(false)
		if err != nil {
			return err
		}
		defer a.Close()

		return cli.Create(cmd.Context(), a.env(), productFields(cmd), flagOutput)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change a product; fields not given keep their value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(false)
		if err != nil {
			return err
		}
		defer a.Close()

		ids, err := idsOrPick(cmd.Context(), a, args, "Select the product to update")
		if err != nil {
			return err
		}
		return cli.Update(cmd.Context(), a.env(), ids[0], productFields(cmd), flagOutput)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a product after confirmation",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(false)
		if err != nil {
			return err
		}
		defer a.Close()

		ids, err := idsOrPick(cmd.Context(), a, args, "Select the product to delete")
		if err != nil {
			return err
		}
		return cli.Delete(cmd.Context(), a.env(), ids[0], flagYes)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the activity log of API calls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.history == nil {
			return errors.New("activity log is disabled (history_enabled: false)")
		}
		return cli.History(cmd.Context(), a.env(), a.history, cli.HistoryOptions{
			Limit:  flagLimit,
			Clear:  flagClear,
			Stats:  flagStats,
			Output: flagOutput,
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo in-memory products API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if cmd.Flags().Changed("host") {
			a.cfg.Server.Host = flagHost
		}
		if cmd.Flags().Changed("port") {
			a.cfg.Server.Port = flagPort
		}

		var seed []types.ProductInput
		if !flagEmpty {
			seed = server.SampleProducts()
		}
		srv := server.New(a.cfg.ServerAddr(), server.NewInMemoryProductRepository(seed), a.logger)
		return srv.Run(cmd.Context())
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage TUI keybindings",
}

var keybindsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the default keybindings (defaults to ~/.catalog/keybinds.json)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigDir(); err != nil {
			return err
		}
		path := config.KeybindsFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := keybinds.SaveConfig(keybinds.ExportDefaults(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Keybindings written to %s\n", path)
		return nil
	},
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a keybindings file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigDir(); err != nil {
			return err
		}
		path := config.KeybindsFile
		if len(args) == 1 {
			path = args[0]
		}

		cfg, err := keybinds.LoadConfig(path)
		if err != nil {
			return err
		}
		result := keybinds.NewValidator().ValidateConfig(cfg)
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
		if result.HasErrors() {
			return fmt.Errorf("%s has errors", path)
		}
		return nil
	},
}

// Global flags
var (
	flagAPIURL     string
	flagConfigFile string
	flagVerbose    bool
)

// Command flags
var (
	flagOutput      string
	flagSearch      string
	flagFilter      string
	flagQuery       string
	flagName        string
	flagDescription string
	flagPrice       string
	flagYes         bool
	flagLimit       int
	flagClear       bool
	flagStats       bool
	flagHost        string
	flagPort        int
	flagEmpty       bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Products API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Config file (default ~/.catalog/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level")

	for _, cmd := range []*cobra.Command{listCmd, getCmd, createCmd, updateCmd, historyCmd} {
		cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (json/yaml/text)")
	}

	listCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Fuzzy match on product names")
	listCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath filter expression")
	listCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(shell command)")

	for _, cmd := range []*cobra.Command{createCmd, updateCmd} {
		cmd.Flags().StringVarP(&flagName, "name", "n", "", "Product name")
		cmd.Flags().StringVarP(&flagDescription, "description", "d", "", "Product description")
		cmd.Flags().StringVarP(&flagPrice, "price", "P", "", "Product price")
	}
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("price")

	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "l", history.DefaultLimit, "Number of entries to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every entry")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Summarize calls per endpoint")

	serveCmd.Flags().StringVar(&flagHost, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVarP(&flagPort, "port", "p", 0, "Listen port (overrides config)")
	serveCmd.Flags().BoolVar(&flagEmpty, "empty", false, "Start without the sample products")

	keybindsCmd.AddCommand(keybindsExportCmd, keybindsCheckCmd)
	rootCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd, historyCmd, serveCmd, keybindsCmd)
}

// productFields collects the create/update flags that were actually given
func productFields(cmd *cobra.Command) cli.ProductFields {
	var fields cli.ProductFields
	if cmd.Flags().Changed("name") {
		fields.Name = &flagName
	}
	if cmd.Flags().Changed("description") {
		fields.Description = &flagDescription
	}
	if cmd.Flags().Changed("price") {
		fields.Price = &flagPrice
	}
	return fields
}

// idsOrPick returns args, or asks the user to pick a product when none were
// given on an interactive terminal
func idsOrPick(ctx context.Context, a *app, args []string, title string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if !cli.IsInteractive() {
		return nil, api.ErrEmptyID
	}

	id, err := cli.PickProduct(ctx, a.env(), title)
	if err != nil {
		return nil, err
	}
	return []string{id}, nil
}

func initConfigDir() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	return nil
}

// app holds what every command builds from the configuration
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *api.Client
	history *history.Manager
}

// setup loads the configuration and builds the logger, the activity log and
// the API client. The TUI owns the terminal, so interactive sessions log to
// the log file only.
func setup(interactive bool) (*app, error) {
	if err := initConfigDir(); err != nil {
		return nil, err
	}

	path := config.ConfigFile
	if flagConfigFile != "" {
		path = flagConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logOpts := logging.Options{Level: cfg.LogLevel, Verbose: flagVerbose}
	if interactive {
		logOpts.File = config.LogFile
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	clientOpts := []api.Option{
		api.WithLogger(logger),
		api.WithTimeout(cfg.RequestTimeout),
	}
	if cfg.TLS != (types.TLSConfig{}) {
		tlsCfg := cfg.TLS
		clientOpts = append(clientOpts, api.WithTLS(&tlsCfg))
	}

	if cfg.IsHistoryEnabled() {
		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			logger.Warn("activity log unavailable", zap.Error(err))
		} else {
			a.history = mgr
			clientOpts = append(clientOpts, api.WithRecorder(mgr))
		}
	}

	client, err := api.New(cfg.APIURL, clientOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.client = client

	logger.Debug("configuration loaded",
		zap.String("api_url", cfg.APIURL),
		zap.Bool("history", a.history != nil),
		zap.Bool("interactive", interactive),
	)
	return a, nil
}

func (a *app) env() cli.Env {
	return cli.Env{
		Client: a.client,
		Logger: a.logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Close releases the activity log and flushes the logger
func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("failed to close activity log", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
