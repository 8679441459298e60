package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/southpaw/internal/coach"
	"github.com/abhisek/southpaw/internal/config"
	"github.com/abhisek/southpaw/internal/curriculum"
	"github.com/abhisek/southpaw/internal/logging"
	"github.com/abhisek/southpaw/internal/progression"
	"github.com/abhisek/southpaw/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "southpaw",
	Short: "Shadow-boxing coach for the terminal",
	Long: "Southpaw walks you through a boxing curriculum one move at a time\n" +
		"and calls out combos to shadow-box, weighted toward what you're learning.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOUTHPAW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ~/.config/southpaw/config.yaml)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(arsenalCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(movesCmd)
	rootCmd.AddCommand(comboCmd)
	rootCmd.AddCommand(workoutCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file / SOUTHPAW_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// runtime bundles what most commands need.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	coach *coach.Coach
}

func (r *runtime) Close() {
	_ = r.log.Sync()
	r.store.Close()
}

// openRuntime loads config, opens the store and loads the learner's
// progress.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("opened store", zap.String("path", dbPath))

	engine := progression.NewEngine(curriculum.Default(), cfg.Rules())
	c := coach.New(engine, st.SnapshotRepo(), st.EventRepo(),
		coach.WithLogger(log.Named("coach")),
		coach.WithKeepSnapshots(cfg.Store.KeepSnapshots),
		coach.WithAppVersion(version),
	)
	if err := c.Load(cmd.Context()); err != nil {
		st.Close()
		return nil, fmt.Errorf("load progress: %w", err)
	}

	return &runtime{cfg: cfg, log: log, store: st, coach: c}, nil
}
