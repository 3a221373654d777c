// Package setup builds the tile world from configuration.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tileworld/pkg/engine/logger"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/config"
	"tileworld/pkg/game/telemetry"
)

// NewRand returns a generator for seed. A zero seed is replaced by the
// clock; the seed actually used is returned so runs can be reproduced.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// BuildWorld creates the grid described by cfg: ground fill, an optional
// weighted populate pass, then random lakes on top.
func BuildWorld(ctx context.Context, cfg config.World, rng *rand.Rand) (*world.Grid, error) {
	_, span := telemetry.Tracer("setup").Start(ctx, "BuildWorld")
	defer span.End()
	span.SetAttributes(
		attribute.Int("world.width", cfg.Width),
		attribute.Int("world.height", cfg.Height),
		attribute.Int("world.lakes", cfg.Lakes),
	)

	log := logger.Component("setup")

	g, err := world.NewGrid(cfg.Height, cfg.Width, cfg.TileSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grid")
		return nil, fmt.Errorf("setup: %w", err)
	}
	g.Fill(world.TileGround)

	if weights := cfg.Weights(); weights != nil {
		if err := g.Populate(rng, weights); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "populate")
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	size := cfg.LakeSize()
	for i := 0; i < cfg.Lakes; i++ {
		lake := g.RandomLake(rng, size, world.DefaultLakeTiles)
		if err := g.PlaceLake(lake); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("setup: lake %d: %w", i, err)
		}
		log.Debug("placed lake", "index", i, "top_left", lake.TopLeft, "bottom_right", lake.BottomRight)
	}

	water := g.Count(world.TileID.IsWater)
	span.SetAttributes(attribute.Int("world.water_tiles", water))
	log.Info("world built",
		slog.Int("rows", g.Rows()),
		slog.Int("cols", g.Cols()),
		slog.Int("lakes", cfg.Lakes),
		slog.Int("water_tiles", water))
	return g, nil
}
