// Command blockfall-sim plays many boards headless with random bots and
// prints a report. Snapshots can be served over HTTP and recorded to disk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/observe"
	"github.com/plus3/blockfall/recorder"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the simulation should run for.")
	boards := flag.Int("boards", 0, "Number of boards to play. Overrides board.count.")
	seed := flag.Uint64("seed", 0, "Random seed. Overrides the config seed; 0 picks one from the clock.")
	tick := flag.Duration("tick", time.Second/60, "Simulated time per tick.")
	realtime := flag.Bool("realtime", false, "Pace ticks at the tick interval instead of running flat out.")
	addr := flag.String("addr", "", "Serve the observe API on this address. Overrides observe.addr.")
	record := flag.String("record", "", "Record frames to this file. Overrides the recorder section.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *boards > 0 {
		cfg.Board.Count = *boards
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if *addr != "" {
		cfg.Observe.Addr = *addr
	}
	if *record != "" {
		cfg.Recorder.Enabled = true
		cfg.Recorder.Path = *record
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	if err := run(cfg, *duration, *tick, *realtime); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

func run(cfg config.Config, duration, tick time.Duration, realtime bool) error {
	log.Info().Int("boards", cfg.Board.Count).Uint64("seed", cfg.Seed).Msg("starting simulation")

	master := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	params := cfg.Params()

	scheduler := loop.NewScheduler()
	store := observe.NewStore()
	publisher := observe.NewPublisher(store)

	instances := make([]*game.Instance, cfg.Board.Count)
	restarters := make([]*restarter, cfg.Board.Count)
	for i := range instances {
		inst := game.New(uuid.NewString(), params)
		instances[i] = inst
		restarters[i] = &restarter{instance: inst}

		scheduler.RegisterNamed(fmt.Sprintf("board-%d", i), &game.System{
			Instance:   inst,
			Controller: &bot{rng: rand.New(rand.NewPCG(master.Uint64(), master.Uint64()))},
			Rand:       rand.New(rand.NewPCG(master.Uint64(), master.Uint64())),
		})
		publisher.Add(inst)
	}
	for i, r := range restarters {
		scheduler.RegisterNamed(fmt.Sprintf("restart-%d", i), r)
	}
	scheduler.Register(publisher)

	var rec *recorder.Recorder
	var recSystem *recorder.System
	if cfg.Recorder.Enabled {
		var err error
		if rec, err = recorder.Create(cfg.Recorder.Path); err != nil {
			return err
		}
		recSystem = recorder.NewSystem(rec, cfg.Recorder.Every, instances...)
		scheduler.Register(recSystem)
		log.Info().Str("path", cfg.Recorder.Path).Int("every", cfg.Recorder.Every).Msg("recording frames")
	}

	var server *http.Server
	if cfg.Observe.Addr != "" {
		server = &http.Server{Addr: cfg.Observe.Addr, Handler: observe.Routes(store)}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Str("addr", cfg.Observe.Addr).Msg("observe server stopped")
			}
		}()
		log.Info().Str("addr", cfg.Observe.Addr).Msg("serving observe API")
	}

	report := &Report{
		Duration: duration,
		Boards:   cfg.Board.Count,
		Seed:     cfg.Seed,
		Width:    cfg.Board.Width,
		Height:   cfg.Board.Height,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()
	if realtime {
		scheduler.Run(ctx, tick)
	} else {
		dt := tick.Seconds()
	Loop:
		for {
			select {
			case <-ctx.Done():
				break Loop
			default:
				updateStart := time.Now()
				scheduler.Once(dt)
				report.TickTime.Samples = append(report.TickTime.Samples, time.Since(updateStart))
			}
		}
	}
	report.TotalTime = time.Since(startTime)
	report.TotalTicks = scheduler.Tick()
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	for i, inst := range instances {
		report.Add(restarters[i].totals, game.PhaseReady)
		report.Add(inst.Stats(), inst.Phase())
		report.Games += restarters[i].games
	}
	report.Systems = scheduler.Stats().Systems

	var errs []error
	if server != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
		errs = append(errs, server.Shutdown(shutdownCtx))
		stop()
	}
	if rec != nil {
		report.Recorded = rec.Frames()
		errs = append(errs, recSystem.Err(), rec.Close())
	}

	log.Info().Uint64("ticks", report.TotalTicks).Msg("simulation finished")

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		errs = append(errs, fmt.Errorf("generate report: %w", err))
	}
	fmt.Println("--- End of Report ---")

	return errors.Join(errs...)
}
