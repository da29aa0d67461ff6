package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/into-the-hole/audio"
	"github.com/lixenwraith/into-the-hole/config"
	"github.com/lixenwraith/into-the-hole/event"
	"github.com/lixenwraith/into-the-hole/export"
	"github.com/lixenwraith/into-the-hole/game"
	"github.com/lixenwraith/into-the-hole/observer"
	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/pipe"
	"github.com/lixenwraith/into-the-hole/render"
	"github.com/lixenwraith/into-the-hole/status"
	"github.com/lixenwraith/into-the-hole/store"
	"github.com/lixenwraith/into-the-hole/vmath"
)

var (
	configFlag   = flag.String("config", "", "Config file (.toml, .yaml, .yml)")
	modeFlag     = flag.String("mode", "", "Start a run immediately: easy, medium, hard")
	seedFlag     = flag.Uint64("seed", 0, "Run seed, 0 picks one from the clock")
	dbFlag       = flag.String("db", defaultDBPath(), "SQLite database for scores and preferences, empty disables")
	logFlag      = flag.String("log", "", "Log file, empty discards logs")
	observerFlag = flag.String("observer", "", "Observer listen address, overrides config")
	muteFlag     = flag.Bool("mute", false, "Start with audio muted")
	exportDir    = flag.String("export-dir", ".", "Directory for OBJ snapshots taken with 'e'")
)

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "into-the-hole", "runs.db")
}

func main() {
	flag.Parse()

	logger, logFile, err := setupLogging(*logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "into-the-hole: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if *configFlag == "" {
		return config.Default(), nil
	}
	return config.Load(*configFlag)
}

func run(logger *log.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *observerFlag != "" {
		cfg.Observer.Enabled = true
		cfg.Observer.Addr = *observerFlag
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	items, err := cfg.ItemPool()
	if err != nil {
		return err
	}
	placers, err := cfg.Selector()
	if err != nil {
		return err
	}
	chain, err := pipe.NewChain(cfg.Pipe, items, placers, vmath.NewFastRand(1), logger)
	if err != nil {
		return err
	}
	defer chain.Release()

	router := event.NewRouter(event.NewQueue())
	g := game.New(chain, router, logger)
	g.SetRotationVelocity(cfg.Game.RotationVelocity)

	// Persistence is optional, the game runs without it
	var db *store.Store
	if *dbFlag != "" {
		db, err = store.OpenSQLite(*dbFlag, logger)
		if err != nil {
			logger.Printf("store disabled: %v", err)
			db = nil
		} else {
			defer db.Close()
			router.Register(db)
		}
	}

	sounds := audio.NewSoundManager(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := sounds.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			logger.Printf("Audio initialization failed: %v", err)
		} else {
			defer sounds.Cleanup()
		}
	}
	if db != nil && *configFlag == "" {
		loadVolume(ctx, db, sounds)
	}
	if *muteFlag || !cfg.Audio.Enabled {
		sounds.ToggleMute()
	}
	router.Register(sounds)

	metrics := status.NewRegistry()
	var obs *observer.Server
	if cfg.Observer.Enabled {
		obs = observer.NewServer(logger)
		obs.SetMetrics(metrics)
		go func() {
			if err := obs.Serve(ctx, cfg.Observer.Addr); err != nil {
				logger.Printf("observer stopped: %v", err)
			}
		}()
	}

	best := newBestTracker(ctx, db)
	router.Register(best)

	mode := cfg.Game.Mode
	if db != nil && *configFlag == "" {
		if v, ok, _ := db.GetPref(ctx, "mode"); ok {
			mode = v
		}
	}
	startMode, err := game.ParseMode(mode)
	if err != nil {
		startMode = game.ModeEasy
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	// Panic recovery: restore the terminal even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mINTO-THE-HOLE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	renderer := render.NewTerminalRenderer(screen)

	seed := func() uint64 {
		switch {
		case *seedFlag != 0:
			return *seedFlag
		case cfg.Game.Seed != 0:
			return cfg.Game.Seed
		}
		return uint64(time.Now().UnixNano())
	}

	start := func(m game.Mode) error {
		best.load(m)
		if db != nil {
			_ = db.SetPref(ctx, "mode", m.String())
		}
		return g.Start(m, seed())
	}

	if *modeFlag != "" {
		m, err := game.ParseMode(*modeFlag)
		if err != nil {
			return err
		}
		if err := start(m); err != nil {
			return err
		}
	} else {
		best.load(startMode)
		if err := g.Menu(seed()); err != nil {
			return err
		}
	}

	eventChan := make(chan tcell.Event, 256)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(parameter.FramePeriod)
	defer frameTicker.Stop()
	timer := game.NewFrameTimer(game.SystemClock{})

	var steer steering
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				renderer.Resize(ev.Size())
			case *tcell.EventKey:
				act, m := mapKey(ev)
				switch act {
				case actionExit:
					return nil
				case actionLeft:
					steer.press(-1, time.Now())
				case actionRight:
					steer.press(1, time.Now())
				case actionStart:
					if g.State() != game.StateRunning {
						if err := start(m); err != nil {
							return err
						}
					}
				case actionQuit:
					if g.State() != game.StateRunning {
						return nil
					}
					g.Quit()
				case actionMute:
					sounds.ToggleMute()
				case actionVolumeUp, actionVolumeDown:
					dir := 1.0
					if act == actionVolumeDown {
						dir = -1
					}
					v := stepVolume(sounds, dir)
					if db != nil {
						if err := saveVolume(ctx, db, v); err != nil {
							logger.Printf("save volume: %v", err)
						}
					}
				case actionExport:
					path := filepath.Join(*exportDir, fmt.Sprintf("pipe-%d.obj.zst", g.Frame()))
					if err := export.WriteOBJFile(path, chain.Segments()); err != nil {
						logger.Printf("export: %v", err)
					} else {
						logger.Printf("exported %s", path)
					}
				}
			}

		case <-frameTicker.C:
			dt := timer.Tick()
			if err := g.Update(dt, steer.input(time.Now())); err != nil {
				return err
			}
			recordMetrics(metrics, g, dt)
			renderer.RenderFrame(g, render.HUD{Best: best.value(), Muted: sounds.Muted()})
			if obs != nil {
				if err := obs.Publish(g.Snapshot()); err != nil {
					logger.Printf("observer: %v", err)
				}
			}
		}
	}
}
