package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"shelfpace/internal/backend"
	"shelfpace/internal/config"
	"shelfpace/internal/library"
	"shelfpace/internal/logging"
	"shelfpace/internal/mcp"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	provider *library.Provider
)

var rootCmd = &cobra.Command{
	Use:   "shelfpace",
	Short: "Shelfpace is a reading-deadline pace analytics MCP server",
	Long: `Shelfpace tracks reading and listening deadlines, reconstructs per-day
activity from cumulative progress snapshots, and serves pace, urgency,
streak, and heatmap analytics as MCP tools over Stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		store, err := library.Open(cfg.DataPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open library store")
		}

		var client backend.Client
		if cfg.Backend.BaseURL != "" {
			client = backend.NewClient(cfg.Backend)
		}
		provider = library.NewProvider(client, store)

		if err := provider.Hydrate(); err != nil {
			// A failed sync still leaves the local library usable.
			log.Warn().Err(err).Msg("Hydration incomplete, continuing with local data")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Int("snapshots", provider.Log().Count()).
			Msg("Shelfpace starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(provider, cfg.Tuning)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("Server loop terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
