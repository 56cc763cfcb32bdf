package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/profile"

	"github.com/hailam/chessmask/internal/engine"
	"github.com/hailam/chessmask/internal/storage"
	"github.com/hailam/chessmask/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to this directory")
	useDB      = flag.Bool("db", false, "cache perft and search results in the user cache directory")
	hashMB     = flag.Int("hash", 64, "perft hash table size in MB")
)

func main() {
	flag.Parse()
	os.Exit(runMain())
}

// runMain returns the exit code once the profile, cache and signal handler
// are released.
func runMain() int {
	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profilePath), profile.NoShutdownHook).Stop()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	eng := engine.NewEngine(*hashMB)

	if *useDB {
		db, err := storage.OpenDefault()
		if err != nil {
			log.Printf("could not open result cache: %v", err)
			return 1
		}
		defer db.Close()
		eng.SetCache(db)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	protocol := uci.New(eng, os.Stdout)
	if err := protocol.Run(ctx, os.Stdin); err != nil {
		log.Printf("reading commands: %v", err)
		return 1
	}
	return 0
}
