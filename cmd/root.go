package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/config"
	"github.com/mindmorph/mindmorph/internal/logger"
	"github.com/mindmorph/mindmorph/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindmorph",
	Short: "Adaptive learning in the terminal",
	Long:  "Mind Morph: a terminal learning companion with a focus tracker, subject quizzes and study stats.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINDMORPH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: $XDG_CONFIG_HOME/mindmorph/config.yaml)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the intro screen")

	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// env is what every data-touching command needs.
type env struct {
	cfg    *config.Config
	dbPath string
	store  *store.Store
	logger *zap.Logger
}

func (e *env) Close() {
	_ = e.logger.Sync()
	_ = e.store.Close()
}

// openEnv loads config, resolves the database, opens the store and builds
// the file logger. console, when set, also receives log output.
func openEnv(cmd *cobra.Command, console bool) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logOpts := logger.Options{File: cfg.LogFile(dbPath), Level: cfg.Log.Level}
	if console {
		logOpts.Console = cmd.ErrOrStderr()
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	return &env{cfg: cfg, dbPath: dbPath, store: st, logger: log}, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db_path from config or MINDMORPH_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
