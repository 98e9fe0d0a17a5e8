package main

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/tarnwald/tacmap/internal/config"
	"github.com/tarnwald/tacmap/internal/geo"
	"github.com/tarnwald/tacmap/internal/scenario"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	world := scenario.Generate(scenario.Params{
		Seed:       cfg.Scenario.Seed,
		Friendlies: cfg.Scenario.Friendlies,
		Hostiles:   cfg.Scenario.Hostiles,
		Neutrals:   cfg.Scenario.Neutrals,
	})
	if cfg.Map.FootprintsPath != "" {
		polys, err := geo.LoadFootprints(cfg.Map.FootprintsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Map.FootprintsPath).Msg("loading footprints")
		}
		world.Occluders = polys
		log.Info().Int("footprints", len(polys)).Msg("loaded map footprints")
	}

	log.Info().
		Int64("seed", cfg.Scenario.Seed).
		Int("units", len(world.Units)).
		Int("buildings", len(world.Occluders)).
		Msg("scenario ready")

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if err := ebiten.RunGame(NewApp(log, world, cfg.Window.Width, cfg.Window.Height)); err != nil {
		log.Fatal().Err(err).Msg("viewer exited")
	}
}
