package world

import (
	"fmt"
	"math"
	"math/rand"
)

// WeightedTile is one entry of a populate distribution
type WeightedTile struct {
	ID     TileID
	Weight float64
}

// Distribution is a normalized discrete distribution over tile IDs
type Distribution struct {
	ids        []TileID
	cumulative []float64 // running sum of normalized weights, last entry is 1
}

// NewDistribution normalizes the weights so they sum to one.
// Weights that are negative or not finite, an empty list, or a list whose
// weights are all zero are rejected.
func NewDistribution(weights []WeightedTile) (Distribution, error) {
	if len(weights) == 0 {
		return Distribution{}, fmt.Errorf("world: distribution: no tiles: %w", ErrBadWeights)
	}

	total := 0.0
	for _, w := range weights {
		if w.Weight < 0 || math.IsNaN(w.Weight) || math.IsInf(w.Weight, 0) {
			return Distribution{}, fmt.Errorf("world: distribution: tile %d weight %v: %w", w.ID, w.Weight, ErrBadWeights)
		}
		total += w.Weight
	}
	if total <= 0 {
		return Distribution{}, fmt.Errorf("world: distribution: weights sum to zero: %w", ErrBadWeights)
	}

	d := Distribution{
		ids:        make([]TileID, len(weights)),
		cumulative: make([]float64, len(weights)),
	}
	running := 0.0
	for i, w := range weights {
		running += w.Weight / total
		d.ids[i] = w.ID
		d.cumulative[i] = running
	}
	d.cumulative[len(d.cumulative)-1] = 1
	return d, nil
}

// Probability returns the normalized weight of the i-th entry
func (d Distribution) Probability(i int) float64 {
	if i == 0 {
		return d.cumulative[0]
	}
	return d.cumulative[i] - d.cumulative[i-1]
}

// Draw picks a tile ID from the distribution
func (d Distribution) Draw(rng *rand.Rand) TileID {
	roll := rng.Float64()
	for i, c := range d.cumulative {
		if roll < c && d.Probability(i) > 0 {
			return d.ids[i]
		}
	}
	// roll landed past the last non-zero entry through float rounding
	for i := len(d.ids) - 1; i >= 0; i-- {
		if d.Probability(i) > 0 {
			return d.ids[i]
		}
	}
	return d.ids[len(d.ids)-1]
}

// Populate assigns every tile independently from the weighted distribution
func (g *Grid) Populate(rng *rand.Rand, weights []WeightedTile) error {
	d, err := NewDistribution(weights)
	if err != nil {
		return err
	}
	for i := range g.tiles {
		g.tiles[i] = d.Draw(rng)
	}
	g.revision++
	return nil
}
