// Command pipemesh builds a pipe chain headlessly and writes it as OBJ.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/into-the-hole/config"
	"github.com/lixenwraith/into-the-hole/export"
	"github.com/lixenwraith/into-the-hole/pipe"
	"github.com/lixenwraith/into-the-hole/vmath"
)

var (
	configFlag  = flag.String("config", "", "Config file (.toml, .yaml, .yml)")
	seedFlag    = flag.Uint64("seed", 1, "Chain seed")
	advanceFlag = flag.Int("advance", 0, "Recycle steps before export")
	itemsFlag   = flag.Bool("items", true, "Populate segments with items")
	outFlag     = flag.String("o", "pipe.obj", "Output path, .zst suffix compresses")
	dumpFlag    = flag.String("dump-config", "", "Write the effective config to this path and exit")
)

func main() {
	flag.Parse()
	logger := log.New(os.Stderr, "pipemesh: ", 0)

	if err := run(logger); err != nil {
		logger.Printf("%v", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return err
		}
	}
	if *dumpFlag != "" {
		return cfg.Save(*dumpFlag)
	}

	chain, err := buildChain(cfg, *seedFlag, *itemsFlag, *advanceFlag, logger)
	if err != nil {
		return err
	}
	defer chain.Release()

	if err := export.WriteOBJFile(*outFlag, chain.Segments()); err != nil {
		return fmt.Errorf("write %s: %w", *outFlag, err)
	}
	logger.Printf("wrote %d segments, %d items to %s", len(chain.Segments()), chain.ItemCount(), *outFlag)
	return nil
}

// buildChain generates a chain and recycles it advance times
func buildChain(cfg config.Config, seed uint64, items bool, advance int, logger *log.Logger) (*pipe.Chain, error) {
	pool, err := cfg.ItemPool()
	if err != nil {
		return nil, err
	}
	placers, err := cfg.Selector()
	if err != nil {
		return nil, err
	}
	chain, err := pipe.NewChain(cfg.Pipe, pool, placers, vmath.NewFastRand(seed), logger)
	if err != nil {
		return nil, err
	}
	chain.SetGenerating(items)
	if _, err := chain.SetupFirst(); err != nil {
		return nil, err
	}
	for i := 0; i < advance; i++ {
		if _, err := chain.SetupNext(); err != nil {
			return nil, err
		}
	}
	return chain, nil
}
