package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/leonelquinteros/gotext"

	"tileworld/pkg/engine/logger"
	"tileworld/pkg/engine/minimap"
	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/engine/terminal"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/assets"
	"tileworld/pkg/game/config"
	"tileworld/pkg/game/devtools"
	"tileworld/pkg/game/renderer"
	ebitenbackend "tileworld/pkg/game/renderer/ebiten"
	"tileworld/pkg/game/renderer/tui"
	"tileworld/pkg/game/setup"
	"tileworld/pkg/game/state"
	"tileworld/pkg/game/telemetry"
)

var errNotTerminal = errors.New("the tui backend needs an interactive terminal")

type options struct {
	configPath string
	backend    string
	logLevel   string
	logFile    string
	seed       int64
	watch      bool
	dumpMap    bool
	minimapPNG string
	telemetry  bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "config.yaml", "path to the YAML configuration")
	flag.StringVar(&o.backend, "backend", "ebiten", "display backend: ebiten or tui")
	flag.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to $LOG_LEVEL or info")
	flag.StringVar(&o.logFile, "log-file", "", "write logs to this file instead of stderr")
	flag.Int64Var(&o.seed, "seed", 0, "world generation seed; 0 uses the configured seed or the clock")
	flag.BoolVar(&o.watch, "watch", false, "reload keys, regions and transitions when the configuration changes")
	flag.BoolVar(&o.dumpMap, "dump-map", false, "print the generated world and exit")
	flag.StringVar(&o.minimapPNG, "minimap-png", "", "save the minimap overlay to this PNG file and exit")
	flag.BoolVar(&o.telemetry, "telemetry", false, "export traces over OTLP/HTTP")
	flag.Parse()
	return o
}

func main() {
	os.Exit(run(parseFlags()))
}

func run(o options) int {
	// .env is optional
	_ = godotenv.Load()

	level := o.logLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	logOut := io.Writer(os.Stderr)
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return 2
		}
		defer f.Close()
		logOut = f
	}
	if err := logger.InitLoggerTo(logOut, level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log := logger.GetLogger()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		log.Warn("configuration not loaded, using defaults", "path", o.configPath, "error", err)
	}
	if o.seed != 0 {
		cfg.World.Seed = o.seed
	}
	gotext.Configure(cfg.Assets.LocaleDir, cfg.Assets.Language, "default")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.telemetry {
		shutdown, err := telemetry.Setup(ctx, cfg.GameInfo.Version)
		if err != nil {
			log.Warn("telemetry disabled", "error", err)
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					log.Warn("telemetry shutdown", "error", err)
				}
			}()
		}
	}

	rng, seed := setup.NewRand(cfg.World.Seed)
	grid, err := setup.BuildWorld(ctx, cfg.World, rng)
	if err != nil {
		log.Error("world generation failed", "seed", seed, "error", err)
		return 1
	}

	if o.dumpMap || o.minimapPNG != "" {
		if err := dump(o, cfg, grid); err != nil {
			log.Error("dump failed", "error", err)
			return 1
		}
		return 0
	}

	catalog := sprite.NewCatalog()
	be, err := newBackend(o.backend, cfg, catalog)
	if err != nil {
		log.Error("backend unavailable", "backend", o.backend, "error", err)
		return 1
	}
	loadSprites(log, cfg, catalog, be)

	s, err := state.New(state.Options{
		Config:    cfg,
		Grid:      grid,
		Catalog:   catalog,
		Logger:    logger.Component("state"),
		Explosion: assets.ExplosionSprite,
	})
	if err != nil {
		log.Error("session not started", "error", err)
		return 1
	}
	defer s.Teardown()

	if o.watch {
		w, err := config.NewWatcher(o.configPath)
		if err != nil {
			log.Warn("configuration watch disabled", "path", o.configPath, "error", err)
		} else {
			defer w.Close()
			go watchConfig(ctx, w, s, logger.Component("watch"))
		}
	}

	log.Info("starting", "backend", be.Name(), "seed", seed, "state", s.Machine.Current())
	if err := runBackend(ctx, be, s, log); err != nil {
		log.Error("session ended with an error", "error", err)
		return 1
	}
	return 0
}

// runBackend turns a panic during the session into an error so the
// deferred teardown still runs and the exit code stays 1.
func runBackend(ctx context.Context, be renderer.Backend, s *state.Session, log *slog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("session panicked", "backend", be.Name(), "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return be.Run(ctx, s)
}

func newBackend(name string, cfg config.Config, catalog *sprite.Catalog) (renderer.Backend, error) {
	switch name {
	case "ebiten":
		return ebitenbackend.New(cfg, catalog), nil
	case "tui":
		if !terminal.IsInteractive(os.Stdout) {
			return nil, errNotTerminal
		}
		return tui.New(cfg), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// loadSprites registers the bundled sheets. Missing sheets leave the
// catalog empty and backends draw plain tiles instead.
func loadSprites(log *slog.Logger, cfg config.Config, catalog *sprite.Catalog, be renderer.Backend) {
	sheets, err := assets.LoadSheets(cfg.Assets, be.Convert)
	if err != nil {
		log.Warn("sprite sheets not loaded", "error", err)
		return
	}
	if err := assets.Register(catalog, sheets, cfg.World.TileSize, cfg.Assets.ExplosionFPS); err != nil {
		log.Warn("sprites not registered", "error", err)
		return
	}
	log.Debug("sprites registered", "count", catalog.Len())
}

// watchConfig queues every valid rewrite of the configuration for the session
func watchConfig(ctx context.Context, w *config.Watcher, s *state.Session, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			cfg, err := config.Load(path)
			if err != nil {
				log.Warn("configuration change ignored", "path", path, "error", err)
				continue
			}
			s.QueueReload(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("configuration watch error", "error", err)
		}
	}
}

func dump(o options, cfg config.Config, grid *world.Grid) error {
	if o.minimapPNG != "" {
		view, err := world.NewViewport(grid, cfg.GameInfo.ScreenWidth, cfg.GameInfo.ScreenHeight)
		if err != nil {
			return err
		}
		view.SetView(cfg.World.StartX, cfg.World.StartY)
		if err := devtools.WriteMinimapPNG(o.minimapPNG, minimap.NewProjector(grid), view); err != nil {
			return err
		}
		color.Green.Printf("minimap written to %s\n", o.minimapPNG)
	}
	if o.dumpMap {
		colored := terminal.IsInteractive(os.Stdout)
		return devtools.DumpMap(os.Stdout, grid, terminal.GetWidth(), colored)
	}
	return nil
}
