// cargoplan is the command-line entry point for the cargo stowage engine:
// plan placements for a batch of items, analyze what blocks retrieval of
// one stowed item, or compare planner settings side by side.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spacecargo/stowage/internal/config"
	"github.com/spacecargo/stowage/internal/engine"
	"github.com/spacecargo/stowage/internal/model"
	"github.com/spacecargo/stowage/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	itemsFile      string
	containersFile string
	outputFile     string
	algorithmFlag  string
	manifestPDF    string
	manifestXLSX   string
	tagsPDF        string
	retrieveItem   string
)

var rootCmd = &cobra.Command{
	Use:   "cargoplan",
	Short: "Cargo stowage planner for constrained storage compartments",
	Long: `cargoplan packs cargo items into compartments using a priority- and
zone-aware first-fit (or genetic weight search) algorithm, and can explain
what must be moved to retrieve any stowed item.`,
	SilenceUsage: true,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargoplan: loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargoplan: building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rootCmd.AddCommand(
		newPlanCmd(cfg, logger),
		newRetrieveCmd(cfg, logger),
		newCompareCmd(cfg, logger),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newPlanCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan placements for a batch of items into containers",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, containers, err := loadInputs(itemsFile, containersFile)
			if err != nil {
				return err
			}

			session, err := engine.NewSession(items, containers, gridConfig(cfg))
			if err != nil {
				return fmt.Errorf("building session: %w", err)
			}

			settings := plannerSettings(cfg)
			if algorithmFlag == "genetic" {
				settings.Algorithm = engine.AlgorithmGenetic
			}

			planner := engine.NewPlanner(settings)
			all := make([]model.Item, 0, len(session.Items))
			for _, it := range session.Items {
				all = append(all, it)
			}

			result := planner.Plan(session, all)
			logger.Info("plan complete",
				zap.Int("placed", len(result.Placements)),
				zap.Int("unplaced", len(result.Unplaced)),
				zap.Bool("success", result.Success),
			)

			if manifestPDF != "" {
				if err := report.GenerateManifest(manifestPDF, result, session.Items, session.Containers); err != nil {
					logger.Warn("manifest generation failed", zap.Error(err))
				}
			}
			if manifestXLSX != "" {
				if err := report.GenerateWorkbook(manifestXLSX, result, session.Items, session.Containers); err != nil {
					logger.Warn("workbook generation failed", zap.Error(err))
				}
			}
			if tagsPDF != "" {
				if err := report.GenerateTags(tagsPDF, session, result); err != nil {
					logger.Warn("tag sheet generation failed", zap.Error(err))
				}
			}

			return writeJSON(outputFile, result)
		},
	}
	cmd.Flags().StringVar(&itemsFile, "items", "", "path to items JSON file (required)")
	cmd.Flags().StringVar(&containersFile, "containers", "", "path to containers JSON file (required)")
	cmd.Flags().StringVar(&outputFile, "output", "", "path to write the PlacementResult JSON (default stdout)")
	cmd.Flags().StringVar(&algorithmFlag, "algorithm", "first_fit", "placement algorithm: first_fit or genetic")
	cmd.Flags().StringVar(&manifestPDF, "manifest-pdf", "", "optional path to write a per-container manifest PDF")
	cmd.Flags().StringVar(&manifestXLSX, "manifest-xlsx", "", "optional path to write a placements/unplaced workbook")
	cmd.Flags().StringVar(&tagsPDF, "tags-pdf", "", "optional path to write a sheet of QR-coded cargo tags")
	cmd.MarkFlagRequired("items")
	cmd.MarkFlagRequired("containers")
	return cmd
}

func newRetrieveCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Explain what must be moved to retrieve a stowed item",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, containers, err := loadInputs(itemsFile, containersFile)
			if err != nil {
				return err
			}
			session, err := engine.NewSession(items, containers, gridConfig(cfg))
			if err != nil {
				return fmt.Errorf("building session: %w", err)
			}

			plan, err := engine.Analyze(session, retrieveItem)
			if err != nil {
				return err
			}
			logger.Info("retrieval analyzed", zap.String("item", retrieveItem), zap.Int("steps", len(plan)))
			return writeJSON(outputFile, plan)
		},
	}
	cmd.Flags().StringVar(&itemsFile, "items", "", "path to items JSON file, for item metadata such as names (required)")
	cmd.Flags().StringVar(&containersFile, "containers", "", "path to containers JSON file with preloaded_items set (required)")
	cmd.Flags().StringVar(&outputFile, "output", "", "path to write the RetrievalPlan JSON (default stdout)")
	cmd.Flags().StringVar(&retrieveItem, "item", "", "id of the item to retrieve (required)")
	cmd.MarkFlagRequired("items")
	cmd.MarkFlagRequired("containers")
	cmd.MarkFlagRequired("item")
	return cmd
}

func newCompareCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare first-fit and genetic planning side by side",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, containers, err := loadInputs(itemsFile, containersFile)
			if err != nil {
				return err
			}
			session, err := engine.NewSession(items, containers, gridConfig(cfg))
			if err != nil {
				return fmt.Errorf("building session: %w", err)
			}

			all := make([]model.Item, 0, len(session.Items))
			for _, it := range session.Items {
				all = append(all, it)
			}

			scenarios := engine.BuildDefaultScenarios(plannerSettings(cfg))
			results := engine.ComparePlans(session, all, scenarios)
			for _, r := range results {
				logger.Info("scenario result",
					zap.String("scenario", r.Scenario.Name),
					zap.Float64("efficiency", r.Efficiency),
					zap.Int("unplaced", r.UnplacedCount),
				)
			}
			return writeJSON(outputFile, results)
		},
	}
	cmd.Flags().StringVar(&itemsFile, "items", "", "path to items JSON file (required)")
	cmd.Flags().StringVar(&containersFile, "containers", "", "path to containers JSON file (required)")
	cmd.Flags().StringVar(&outputFile, "output", "", "path to write the comparison JSON (default stdout)")
	cmd.MarkFlagRequired("items")
	cmd.MarkFlagRequired("containers")
	return cmd
}

// gridConfig converts the loaded engine tunables into the engine's own
// grid configuration type.
func gridConfig(cfg *config.Config) engine.GridConfig {
	return engine.GridConfig{
		DenseVoxelThreshold:      cfg.Engine.DenseVoxelThreshold,
		FitSearchBudget:          cfg.Engine.FitSearchBudget,
		LargeItemVolumeThreshold: cfg.Engine.LargeItemVolumeThreshold,
	}
}

// plannerSettings builds first-fit-algorithm planner settings from cfg,
// with the genetic weight search's own parameters set for callers that
// switch algorithms afterward.
func plannerSettings(cfg *config.Config) engine.PlannerSettings {
	return engine.PlannerSettings{
		Algorithm:             engine.AlgorithmFirstFit,
		DefaultVerticalWeight: cfg.Engine.DefaultVerticalWeight,
		DefaultZonePenalty:    cfg.Engine.DefaultZonePenalty,
		Genetic: engine.GeneticSettings{
			PopulationSize: cfg.Genetic.PopulationSize,
			Generations:    cfg.Genetic.Generations,
			MutationRate:   cfg.Genetic.MutationRate,
			TournamentSize: cfg.Genetic.TournamentSize,
			EliteCount:     cfg.Genetic.EliteCount,
			Seed:           cfg.Genetic.Seed,
		},
	}
}

func loadInputs(itemsPath, containersPath string) ([]model.ItemInput, []model.ContainerInput, error) {
	var items []model.ItemInput
	if err := readJSONFile(itemsPath, &items); err != nil {
		return nil, nil, fmt.Errorf("reading items file: %w", err)
	}
	var containers []model.ContainerInput
	if err := readJSONFile(containersPath, &containers); err != nil {
		return nil, nil, fmt.Errorf("reading containers file: %w", err)
	}
	return items, containers, nil
}

func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, data, 0644)
}
