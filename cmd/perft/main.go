// Command perft counts leaf nodes below a position and optionally checks
// every node against a reference move generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/hailam/chessmask/internal/board"
	"github.com/hailam/chessmask/internal/engine"
	"github.com/hailam/chessmask/internal/storage"
	"github.com/hailam/chessmask/internal/verify"
)

var (
	fen        = flag.String("fen", board.StartFEN, "position to count from")
	depth      = flag.Int("depth", 5, "perft depth")
	divide     = flag.Bool("divide", false, "print the count below each root move")
	workers    = flag.Int("workers", 0, "root subtrees counted at once (0 = GOMAXPROCS)")
	hashMB     = flag.Int("hash", 64, "perft hash table size in MB (0 disables)")
	reference  = flag.String("verify", "", "cross-check moves against dragontooth or notnil")
	useDB      = flag.Bool("db", false, "cache results in the user cache directory")
	listDB     = flag.Bool("list-db", false, "print cached perft counts and exit")
	clearDB    = flag.Bool("clear-db", false, "empty the result cache and exit")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to this directory")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	os.Exit(runMain())
}

// runMain returns the exit code once the profile and signal handler are
// released.
func runMain() int {
	if *cpuprofile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuprofile), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}

func run(ctx context.Context) error {
	if *listDB || *clearDB {
		return maintainDB()
	}

	eng := engine.NewEngine(*hashMB)
	n := *workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	eng.SetWorkers(n)

	g, err := board.FromFEN(eng.Tables(), *fen)
	if err != nil {
		return err
	}

	if *reference != "" {
		ref, err := verify.ByName(*reference)
		if err != nil {
			return err
		}
		mismatches, err := verify.CrossCheck(ctx, g, ref, *depth)
		if err != nil {
			return err
		}
		for _, m := range mismatches {
			fmt.Println(m)
		}
		if len(mismatches) > 0 {
			return fmt.Errorf("%d positions disagree with %s", len(mismatches), ref.Name())
		}
		fmt.Printf("%s agrees to depth %d\n", ref.Name(), *depth)
		return nil
	}

	if *useDB {
		db, err := storage.OpenDefault()
		if err != nil {
			return fmt.Errorf("opening result cache: %w", err)
		}
		defer db.Close()
		eng.SetCache(db)
	}

	start := time.Now()
	var nodes uint64
	if *divide {
		entries, err := eng.Divide(ctx, g, *depth)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		}
		nodes = engine.Total(entries)
		fmt.Println()
	} else {
		nodes, err = eng.Perft(ctx, g, *depth)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
	if *hashMB > 0 {
		fmt.Printf("Hash hits: %d.%d%%\n", eng.PerftHitRate()/10, eng.PerftHitRate()%10)
	}
	return nil
}

func maintainDB() error {
	db, err := storage.OpenDefault()
	if err != nil {
		return fmt.Errorf("opening result cache: %w", err)
	}
	defer db.Close()

	if *clearDB {
		if err := db.Clear(); err != nil {
			return err
		}
		log.Println("result cache cleared")
		return nil
	}

	records, err := db.PerftRecords()
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Printf("%-90s depth %2d  %d  (%s)\n", r.FEN, r.Depth, r.Nodes, r.RecordedAt.Format(time.DateTime))
	}
	return nil
}
