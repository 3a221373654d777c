// Package config loads the tileworld configuration document.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tileworld/pkg/engine/input"
	"tileworld/pkg/engine/scene"
	"tileworld/pkg/engine/world"
)

// ErrInvalid is returned when a loaded document fails validation
var ErrInvalid = errors.New("config: invalid")

// GameInfo is the game_info group
type GameInfo struct {
	Title        string `yaml:"game_title"`
	Version      string `yaml:"game_version"`
	DevDate      string `yaml:"game_dev_date"`
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	FPS          int    `yaml:"fps"`
}

// TileWeight is one populate entry
type TileWeight struct {
	Tile   int     `yaml:"tile"`
	Weight float64 `yaml:"weight"`
}

// World is the world group
type World struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TileSize  int     `yaml:"tile_size"`
	StartX    float64 `yaml:"start_x"`
	StartY    float64 `yaml:"start_y"`
	MoveSpeed float64 `yaml:"move_speed"`

	Lakes       int `yaml:"lakes"`
	LakeMinRows int `yaml:"lake_min_rows"`
	LakeMaxRows int `yaml:"lake_max_rows"`
	LakeMinCols int `yaml:"lake_min_cols"`
	LakeMaxCols int `yaml:"lake_max_cols"`

	// Seed 0 means seed from the clock
	Seed     int64        `yaml:"seed"`
	Populate []TileWeight `yaml:"populate"`
}

// Assets is the assets group
type Assets struct {
	Tiles        string  `yaml:"tiles"`
	Effects      string  `yaml:"effects"`
	Music        string  `yaml:"music"`
	MusicVolume  float64 `yaml:"music_volume"`
	LocaleDir    string  `yaml:"locale_dir"`
	Language     string  `yaml:"language"`
	ExplosionFPS float64 `yaml:"explosion_fps"`
}

// Config is the whole document
type Config struct {
	GameInfo GameInfo `yaml:"game_info"`
	World    World    `yaml:"world"`
	Assets   Assets   `yaml:"assets"`

	// Keys maps action names ("key_play") to key names ("p")
	Keys map[string]string `yaml:"keys"`
	// Regions maps region names to [x1, y1, x2, y2]
	Regions map[string][]int `yaml:"regions"`
	// Transitions rows are [from, to, conditions]
	Transitions [][]string `yaml:"state_transitions"`

	StartState     string   `yaml:"start_state"`
	PlayState      string   `yaml:"play_state"`
	TerminalStates []string `yaml:"terminal_states"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		GameInfo: GameInfo{
			Title:        "Standard Program",
			Version:      "0.1",
			DevDate:      "November 2024",
			ScreenWidth:  800,
			ScreenHeight: 600,
			FPS:          60,
		},
		World: World{
			Width:       128,
			Height:      128,
			TileSize:    32,
			StartX:      1648,
			StartY:      3396,
			MoveSpeed:   400,
			Lakes:       2,
			LakeMinRows: 15,
			LakeMaxRows: 34,
			LakeMinCols: 13,
			LakeMaxCols: 58,
		},
		Assets: Assets{
			Tiles:        "assets/sprites/water-tiles.png",
			Effects:      "assets/sprites/effects.png",
			Music:        "assets/audio/assets_sounds_intro.mp3",
			MusicVolume:  0.5,
			LocaleDir:    "locales",
			Language:     "en_GB",
			ExplosionFPS: 10,
		},
		Keys: map[string]string{
			"key_play":    "p",
			"key_setup":   "s",
			"key_restore": "r",
			"key_exit":    "escape",
			"key_menu":    "escape",
		},
		Regions: map[string][]int{
			"play":    {300, 200, 500, 250},
			"setup":   {300, 270, 500, 320},
			"restore": {300, 340, 500, 390},
			"exit":    {300, 410, 500, 460},
			"back":    {300, 480, 500, 530},
		},
		Transitions: [][]string{
			{"initial", "main_menu", "auto"},
			{"main_menu", "play", "key_play|region play"},
			{"main_menu", "setup", "key_setup|region setup"},
			{"main_menu", "restore", "key_restore|region restore"},
			{"main_menu", "exit", "key_exit|region exit"},
			{"play", "main_menu", "key_menu"},
			{"setup", "main_menu", "key_menu|region back"},
			{"restore", "main_menu", "key_menu|region back"},
		},
		StartState:     "initial",
		PlayState:      "play",
		TerminalStates: []string{"exit", "exit_game"},
	}
}

// Load reads path over the defaults. Groups present in the document replace
// the matching default fields; absent fields keep their defaults. On any
// failure the defaults are returned together with the error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a document over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	// yaml.v3 decodes into the populated struct field by field and adds map
	// entries to the existing default maps, which gives a one-level merge.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks sizes, rates and the shape of regions and transitions
func (c Config) Validate() error {
	var problems []string
	positive := func(name string, v int) {
		if v <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got %d", name, v))
		}
	}
	positive("game_info.screen_width", c.GameInfo.ScreenWidth)
	positive("game_info.screen_height", c.GameInfo.ScreenHeight)
	positive("game_info.fps", c.GameInfo.FPS)
	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("world.tile_size", c.World.TileSize)
	if c.World.Lakes < 0 {
		problems = append(problems, fmt.Sprintf("world.lakes must not be negative, got %d", c.World.Lakes))
	}
	if c.World.MoveSpeed < 0 {
		problems = append(problems, fmt.Sprintf("world.move_speed must not be negative, got %v", c.World.MoveSpeed))
	}
	for name, r := range c.Regions {
		if len(r) != 4 {
			problems = append(problems, fmt.Sprintf("region %q needs 4 coordinates, got %d", name, len(r)))
		}
	}
	for i, row := range c.Transitions {
		if len(row) != 3 {
			problems = append(problems, fmt.Sprintf("state_transitions[%d] needs [from, to, condition], got %d fields", i, len(row)))
		}
	}
	if strings.TrimSpace(c.StartState) == "" {
		problems = append(problems, "start_state must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Rules compiles the transition rows into machine rules
func (c Config) Rules() ([]scene.Rule, error) {
	rules := make([]scene.Rule, 0, len(c.Transitions))
	for i, row := range c.Transitions {
		if len(row) != 3 {
			return nil, fmt.Errorf("config: state_transitions[%d]: %w", i, ErrInvalid)
		}
		conds, err := scene.ParseConditions(row[2])
		if err != nil {
			return nil, fmt.Errorf("config: state_transitions[%d]: %w", i, err)
		}
		rules = append(rules, scene.Rule{
			From: strings.TrimSpace(row[0]),
			To:   strings.TrimSpace(row[1]),
			When: conds,
		})
	}
	return rules, nil
}

// SceneRegions converts the region table to machine rectangles
func (c Config) SceneRegions() map[string]scene.Rect {
	out := make(map[string]scene.Rect, len(c.Regions))
	for name, r := range c.Regions {
		if len(r) != 4 {
			continue
		}
		out[name] = scene.Rect{X1: r[0], Y1: r[1], X2: r[2], Y2: r[3]}
	}
	return out
}

// SceneOptions builds the machine options for this document
func (c Config) SceneOptions(log *slog.Logger) (scene.Options, error) {
	rules, err := c.Rules()
	if err != nil {
		return scene.Options{}, err
	}
	return scene.Options{
		Start:    c.StartState,
		Rules:    rules,
		Regions:  c.SceneRegions(),
		Keymap:   input.NewKeymap(c.Keys, log),
		Terminal: c.TerminalStates,
		Logger:   log,
	}, nil
}

// LakeSize returns the random lake dimensions
func (w World) LakeSize() world.LakeSize {
	return world.LakeSize{
		MinRows: w.LakeMinRows,
		MaxRows: w.LakeMaxRows,
		MinCols: w.LakeMinCols,
		MaxCols: w.LakeMaxCols,
	}
}

// Weights returns the populate distribution, nil when none is configured
func (w World) Weights() []world.WeightedTile {
	if len(w.Populate) == 0 {
		return nil
	}
	out := make([]world.WeightedTile, len(w.Populate))
	for i, p := range w.Populate {
		out[i] = world.WeightedTile{ID: world.TileID(p.Tile), Weight: p.Weight}
	}
	return out
}
