// Command blockfall is a playable single-board window with an optional
// ImGui inspector.
package main

import (
	"errors"
	"flag"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/observe"
	"github.com/plus3/blockfall/recorder"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const tickRate = 60

// Game implements ebiten.Game around one board and the ImGui overlay.
type Game struct {
	instance  *game.Instance
	scheduler *loop.Scheduler
	backend   *ebitenbackend.EbitenBackend
	ui        *debugui.System
	panels    []debugui.Panel
	renderer  *renderer
	showUI    bool
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.instance.Reset()
		log.Info().Str("board", g.instance.ID()).Msg("board reset")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showUI = !g.showUI
		g.ui.Panels = nil
		if g.showUI {
			g.ui.Panels = g.panels
		}
	}

	g.backend.BeginFrame()
	g.scheduler.Once(1.0 / tickRate)
	g.backend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.draw(screen, g.instance.Snapshot())
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// keyboard maps held keys to actions unless ImGui has the keyboard.
type keyboard struct {
	mapper *input.Mapper[ebiten.Key]
	ui     *debugui.System
}

func newKeyboard(cfg config.InputConfig, ui *debugui.System) *keyboard {
	m := input.NewMapper[ebiten.Key](cfg.RepeatDelay, cfg.RepeatRate).
		Bind(ebiten.KeyLeft, game.ActionMoveLeft, true).
		Bind(ebiten.KeyA, game.ActionMoveLeft, true).
		Bind(ebiten.KeyRight, game.ActionMoveRight, true).
		Bind(ebiten.KeyD, game.ActionMoveRight, true).
		Bind(ebiten.KeyUp, game.ActionRotate, false).
		Bind(ebiten.KeyX, game.ActionRotate, false).
		Bind(ebiten.KeyZ, game.ActionRotateCCW, false).
		Bind(ebiten.KeySpace, game.ActionHardDrop, false).
		Bind(ebiten.KeyP, game.ActionTogglePause, false).
		Bind(ebiten.KeyEscape, game.ActionTogglePause, false)
	return &keyboard{mapper: m, ui: ui}
}

func (k *keyboard) Action() game.Action {
	if k.ui.Input.WantCaptureKeyboard {
		return game.ActionNone
	}
	return k.mapper.Poll(ebiten.IsKeyPressed, time.Now())
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	seed := flag.Uint64("seed", 0, "Random seed. Overrides the config seed; 0 picks one from the clock.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
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
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	imgui.CurrentIO().SetIniFilename("")

	inst := game.New(uuid.NewString(), cfg.Params())
	log.Info().Str("board", inst.ID()).Uint64("seed", cfg.Seed).Msg("new game")

	scheduler := loop.NewScheduler()
	ui := debugui.NewSystem()
	scheduler.Register(&game.System{
		Instance:   inst,
		Controller: newKeyboard(cfg.Input, ui),
		Rand:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
	})
	scheduler.Register(ui)

	if cfg.Recorder.Enabled {
		rec, err := recorder.Create(cfg.Recorder.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start recorder")
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close recording")
			}
		}()
		scheduler.Register(recorder.NewSystem(rec, cfg.Recorder.Every, inst))
	}

	if cfg.Observe.Addr != "" {
		store := observe.NewStore()
		publisher := observe.NewPublisher(store)
		publisher.Add(inst)
		scheduler.Register(publisher)

		go func() {
			err := http.ListenAndServe(cfg.Observe.Addr, observe.Routes(store))
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Str("addr", cfg.Observe.Addr).Msg("observe server stopped")
			}
		}()
	}

	g := &Game{
		instance:  inst,
		scheduler: scheduler,
		backend:   backend,
		ui:        ui,
		panels: []debugui.Panel{
			debugui.NewBoardInspector(inst),
			debugui.NewSchedulerStats(scheduler, 120),
		},
		renderer: newRenderer(cfg.Render.CellSize, inst.Params().Color),
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game exited")
	}
}
