package engine

import (
	"math/rand"
	"sort"

	"github.com/spacecargo/stowage/internal/model"
)

// GeneticSettings holds parameters for the weight-search genetic algorithm.
type GeneticSettings struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticSettings returns sensible default parameters.
func DefaultGeneticSettings() GeneticSettings {
	return GeneticSettings{
		PopulationSize: 30,
		Generations:    40,
		MutationRate:   0.2,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// weightChromosome is a candidate scoring tie-break: vertical weight and
// zone-mismatch penalty. Unlike a permutation chromosome, this never
// reorders items — every genome is decoded with the same
// priority/volume-ordered item sequence, preserving priority monotonicity
// while still searching a meaningful parameter space.
type weightChromosome struct {
	vertical    float64
	zonePenalty float64
	fitness     float64
}

func (c weightChromosome) toWeights() zoneWeights {
	v := int(c.vertical)
	if v < 1 {
		v = 1
	}
	p := int(c.zonePenalty)
	if p < 0 {
		p = 0
	}
	return zoneWeights{vertical: v, zonePenalty: p}
}

// PlanGenetic evolves zoneWeights over generations, decoding each genome
// by running planFirstFit against a fresh clone of session, and commits
// the best-found weights' result into session. baseline seeds the
// population's first candidate and is used directly when items is empty.
func PlanGenetic(session *Session, items []model.Item, settings GeneticSettings, baseline zoneWeights) model.PlacementResult {
	if len(items) == 0 {
		return planFirstFit(session, items, baseline)
	}

	rng := rand.New(rand.NewSource(settings.Seed))
	ordered := orderByPriorityThenVolume(items)

	totalVolume := 0
	for _, item := range ordered {
		totalVolume += item.Volume()
	}

	evaluate := func(c weightChromosome) float64 {
		if totalVolume == 0 {
			return 0
		}
		trial := session.Clone()
		result := planFirstFit(trial, ordered, c.toWeights())
		placedVolume := 0
		for _, pl := range result.Placements {
			placedVolume += pl.Position.Volume()
		}
		return float64(placedVolume) / float64(totalVolume)
	}

	population := make([]weightChromosome, settings.PopulationSize)
	population[0] = weightChromosome{vertical: float64(baseline.vertical), zonePenalty: float64(baseline.zonePenalty)}
	for i := 1; i < settings.PopulationSize; i++ {
		population[i] = weightChromosome{
			vertical:    1 + rng.Float64()*20,
			zonePenalty: rng.Float64() * 2000,
		}
	}
	for i := range population {
		population[i].fitness = evaluate(population[i])
	}

	tournament := func() weightChromosome {
		best := population[rng.Intn(len(population))]
		for i := 1; i < settings.TournamentSize; i++ {
			c := population[rng.Intn(len(population))]
			if c.fitness > best.fitness {
				best = c
			}
		}
		return best
	}

	for gen := 0; gen < settings.Generations; gen++ {
		sort.Slice(population, func(i, j int) bool { return population[i].fitness > population[j].fitness })

		next := make([]weightChromosome, 0, settings.PopulationSize)
		elite := settings.EliteCount
		if elite > len(population) {
			elite = len(population)
		}
		next = append(next, population[:elite]...)

		for len(next) < settings.PopulationSize {
			p1, p2 := tournament(), tournament()
			child := weightChromosome{
				vertical:    (p1.vertical + p2.vertical) / 2,
				zonePenalty: (p1.zonePenalty + p2.zonePenalty) / 2,
			}
			if rng.Float64() < settings.MutationRate {
				child.vertical += (rng.Float64() - 0.5) * 4
				if child.vertical < 1 {
					child.vertical = 1
				}
			}
			if rng.Float64() < settings.MutationRate {
				child.zonePenalty += (rng.Float64() - 0.5) * 400
				if child.zonePenalty < 0 {
					child.zonePenalty = 0
				}
			}
			child.fitness = evaluate(child)
			next = append(next, child)
		}
		population = next
	}

	// Replay the winning weights against the real session so its grids end
	// up committed, not just the disposable clones used to search.
	best := population[0]
	for _, c := range population {
		if c.fitness > best.fitness {
			best = c
		}
	}
	return planFirstFit(session, ordered, best.toWeights())
}
