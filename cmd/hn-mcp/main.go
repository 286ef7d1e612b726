package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hnlabs/hn-mcp-go/internal/config"
	"github.com/hnlabs/hn-mcp-go/internal/hn"
	"github.com/hnlabs/hn-mcp-go/internal/server"
	"github.com/hnlabs/hn-mcp-go/internal/utils"
	"github.com/hnlabs/hn-mcp-go/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hn-mcp",
	Short: "HackerNews MCP server",
	Long: `hn-mcp exposes the public HackerNews API to MCP clients as tools,
resources and prompts, speaking the Model Context Protocol over stdio.

Item, user and story-list fetches are cached in memory with a bounded,
TTL-expiring cache; nothing is persisted between runs.`,
	Version: version.Short(),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.hn-mcp/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", config.DefaultBaseURL, "HackerNews API base URL")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().Duration("cache-ttl", config.DefaultCacheTTL, "Cache TTL")
	rootCmd.PersistentFlags().Int("cache-size", config.DefaultCacheMaxSize, "Max cached entries per cache")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("api.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("cache.ttl", rootCmd.PersistentFlags().Lookup("cache-ttl"))
	_ = viper.BindPFlag("cache.max_size", rootCmd.PersistentFlags().Lookup("cache-size"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	log.Info().
		Str("base_url", cfg.API.BaseURL).
		Dur("timeout", cfg.API.Timeout).
		Dur("cache_ttl", cfg.Cache.TTL).
		Int("cache_size", cfg.Cache.MaxSize).
		Msg("starting hn-mcp")

	client := hn.NewClient(hn.Options{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		CacheTTL:     cfg.Cache.TTL,
		CacheMaxSize: cfg.Cache.MaxSize,
		Logger:       log.WithComponent("hn").Logger,
	})

	srv := server.New(client, log)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print detailed version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
