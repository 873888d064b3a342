// Package config loads runtime tuning parameters for the stowage engine —
// fit-search budgets, voxel thresholds, and genetic-algorithm defaults —
// from a config file and environment, the way arxos loads its backend config.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all tunables for a cargoplan run.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Genetic GeneticConfig `mapstructure:"genetic"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig controls the occupancy grid and fit search.
type EngineConfig struct {
	DenseVoxelThreshold      int `mapstructure:"dense_voxel_threshold"`
	FitSearchBudget          int `mapstructure:"fit_search_budget"`
	LargeItemVolumeThreshold int `mapstructure:"large_item_volume_threshold"`
	DefaultZonePenalty       int `mapstructure:"default_zone_penalty"`
	DefaultVerticalWeight    int `mapstructure:"default_vertical_weight"`
}

// GeneticConfig controls the weight-search metaheuristic.
type GeneticConfig struct {
	PopulationSize int     `mapstructure:"population_size"`
	Generations    int     `mapstructure:"generations"`
	MutationRate   float64 `mapstructure:"mutation_rate"`
	TournamentSize int     `mapstructure:"tournament_size"`
	EliteCount     int     `mapstructure:"elite_count"`
	Seed           int64   `mapstructure:"seed"`
}

// LoggingConfig controls the zap logger built by NewLogger.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Development bool   `mapstructure:"development"`
}

// Load reads cargoplan configuration from (in order of increasing
// precedence) built-in defaults, a config file named "cargoplan" on the
// search path, and CARGOPLAN_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("engine.dense_voxel_threshold", 1_000_000)
	v.SetDefault("engine.fit_search_budget", 10_000)
	v.SetDefault("engine.large_item_volume_threshold", 5_000)
	v.SetDefault("engine.default_zone_penalty", 1000)
	v.SetDefault("engine.default_vertical_weight", 10)

	v.SetDefault("genetic.population_size", 30)
	v.SetDefault("genetic.generations", 40)
	v.SetDefault("genetic.mutation_rate", 0.2)
	v.SetDefault("genetic.tournament_size", 3)
	v.SetDefault("genetic.elite_count", 2)
	v.SetDefault("genetic.seed", 42)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.development", false)

	v.SetConfigName("cargoplan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cargoplan")

	v.AutomaticEnv()
	v.SetEnvPrefix("CARGOPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Engine.FitSearchBudget < 1 {
		return fmt.Errorf("engine.fit_search_budget must be at least 1")
	}
	if cfg.Engine.DenseVoxelThreshold < 1 {
		return fmt.Errorf("engine.dense_voxel_threshold must be at least 1")
	}
	if cfg.Genetic.PopulationSize < 1 {
		return fmt.Errorf("genetic.population_size must be at least 1")
	}
	if cfg.Genetic.TournamentSize > cfg.Genetic.PopulationSize {
		return fmt.Errorf("genetic.tournament_size cannot exceed population_size")
	}
	if cfg.Genetic.MutationRate < 0 || cfg.Genetic.MutationRate > 1 {
		return fmt.Errorf("genetic.mutation_rate must be between 0 and 1")
	}
	return nil
}
