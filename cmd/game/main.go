package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/gridsim/internal/application/game"
	"github.com/younwookim/gridsim/internal/application/replay"
	"github.com/younwookim/gridsim/internal/application/scene/sandbox"
	"github.com/younwookim/gridsim/internal/infrastructure/config"
)

func main() {
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	levelName := flag.String("level", "demo", "Level to load from levels/")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headless := flag.Bool("headless", false, "With -replay, run without a window and print the result")
	flag.Parse()

	loader, err := newLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	cfg, err := loader.LoadEngine()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	recordFilename := *recordFlag
	opts := sandbox.Options{Engine: cfg, RecordPath: recordFilename}

	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if data.Level != "" && data.Level != *levelName {
			log.Printf("Replay was recorded on %q, loading it instead of %q", data.Level, *levelName)
			*levelName = data.Level
		}
		if data.TickRate != 0 && data.TickRate != cfg.Simulation.TickRate {
			log.Printf("Replay tick rate %d differs from config %d, using the replay's", data.TickRate, cfg.Simulation.TickRate)
			cfg.Simulation.TickRate = data.TickRate
		}
		opts.Input = sandbox.ReplayInput{Replayer: replay.NewReplayer(*data)}
		log.Printf("Replaying %s (%d frames)", *replayFlag, len(data.Frames))
	}

	levelCfg, err := loader.LoadLevel(*levelName)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	opts.Level = levelCfg

	sb, err := sandbox.New(opts)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	if *headless {
		if *replayFlag == "" {
			log.Fatal("-headless needs -replay")
		}
		res, err := runHeadless(sb)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		fmt.Println(res)
		return
	}

	if recordFilename != "" {
		log.Printf("Recording input to %s", recordFilename)
	}

	g := game.New(sb, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)

	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Simulation.TargetFPS)

	err = ebiten.RunGame(g)
	// the scene is left without a transition when the window closes
	sb.SaveRecording()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// newLoader reads configs from dir, or from the embedded copy when empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, ""), nil
}
