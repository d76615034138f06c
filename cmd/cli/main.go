package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nairamart/catalog-service/config"
	"github.com/nairamart/catalog-service/internal/upstream"
	"github.com/nairamart/catalog-service/internal/upstream/ratelimit"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalog-service",
	Short: "Catalog Service CLI - Storefront catalog tooling",
	Long: `A CLI tool for fetching, normalizing, and deriving merchandising views
from the commerce API's raw catalog records. Useful for inspecting what the
storefront will render without running the full service.`,
	PersistentPreRunE: persistentPreRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config is optional for some commands, don't fail here
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

// persistentPreRun runs before each command and initializes the logger
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	logger = initLogger()
	return nil
}

func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if cfg != nil && cfg.Logging.Level != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsedLevel
		}
	}

	// Always use console format for CLI
	output := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cfg != nil && cfg.Logging.NoColor}
	l := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &l
}

// newClient builds the upstream client from config. Commands that talk to
// the commerce API call this in their RunE.
func newClient() (*upstream.Client, error) {
	baseURL := config.GetUpstreamURL()
	if baseURL == "" {
		return nil, fmt.Errorf("COMMERCE_API_URL not set")
	}

	var tokens *upstream.TokenSource
	if cfg != nil && cfg.Upstream.ClientID != "" {
		tokens = upstream.NewTokenSource(upstream.ClientCredentialsRefresh(
			baseURL, cfg.Upstream.ClientID, cfg.Upstream.ClientSecret))
	}

	opts := upstream.Options{BaseURL: baseURL, Tokens: tokens, Logger: *logger}
	if cfg != nil {
		opts.Timeout = cfg.Upstream.Timeout
		opts.RateLimit = &ratelimit.PartialConfig{
			RequestsPerSecond: &cfg.Upstream.RequestsPerSecond,
			MaxRetries:        &cfg.Upstream.MaxRetries,
			InitialBackoff:    &cfg.Upstream.InitialBackoff,
			MaxBackoff:        &cfg.Upstream.MaxBackoff,
		}
	}
	return upstream.New(opts), nil
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
