package engine

import "github.com/spacecargo/stowage/internal/model"

// PlanScenario names a PlannerSettings variant to compare.
type PlanScenario struct {
	Name     string
	Settings PlannerSettings
}

// ScenarioResult holds the planning result and derived statistics for one scenario.
type ScenarioResult struct {
	Scenario      PlanScenario
	Result        model.PlacementResult
	Efficiency    float64
	UnplacedCount int
}

// ComparePlans runs each scenario against its own clone of session, so
// none of them observe each other's mutations, and reports the resulting
// efficiency side by side.
func ComparePlans(session *Session, items []model.Item, scenarios []PlanScenario) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		trial := session.Clone()
		planner := NewPlanner(scenario.Settings)
		result := planner.Plan(trial, items)

		results = append(results, ScenarioResult{
			Scenario:      scenario,
			Result:        result,
			Efficiency:    Efficiency(result, trial.Items),
			UnplacedCount: len(result.Unplaced),
		})
	}
	return results
}

// BuildDefaultScenarios generates the standard what-if comparison: the
// base settings and the alternate algorithm.
func BuildDefaultScenarios(base PlannerSettings) []PlanScenario {
	scenarios := []PlanScenario{{Name: "Current Settings", Settings: base}}

	alt := base
	if base.Algorithm == AlgorithmFirstFit {
		alt.Algorithm = AlgorithmGenetic
		scenarios = append(scenarios, PlanScenario{Name: "Genetic Algorithm", Settings: alt})
	} else {
		alt.Algorithm = AlgorithmFirstFit
		scenarios = append(scenarios, PlanScenario{Name: "First-Fit Algorithm", Settings: alt})
	}
	return scenarios
}
