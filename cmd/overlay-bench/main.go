package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"
	"github.com/rs/zerolog"

	"github.com/tarnwald/tacmap/internal/overlay"
	"github.com/tarnwald/tacmap/internal/scenario"
)

const frameDt = 1.0 / 60.0

type runStats struct {
	runIndex int
	seed     int64

	frames        int
	ghostsCreated int
	ghostsRemoved int
	firstGhost    int
	peakGhosts    int

	labelsPlaced    int
	labelsDisplaced int
	peakLabels      int

	elapsed time.Duration
}

func main() {
	var runs int
	var frames int
	var seedBase int64
	var seedStep int64
	var friendlies int
	var hostiles int
	var neutrals int
	var parallel int

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&frames, "frames", 3600, "frames per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&friendlies, "friendlies", 4, "friendly observers per run")
	flag.IntVar(&hostiles, "hostiles", 12, "hostiles per run")
	flag.IntVar(&neutrals, "neutrals", 6, "neutrals per run")
	flag.IntVar(&parallel, "parallel", 4, "runs executed concurrently")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}
	if parallel <= 0 {
		parallel = 1
	}

	fmt.Printf("=== Overlay Pipeline Report ===\n")
	fmt.Printf("runs=%d frames=%d seed_base=%d seed_step=%d units=%d+%d+%d parallel=%d\n\n",
		runs, frames, seedBase, seedStep, friendlies, hostiles, neutrals, parallel)

	all := make([]runStats, runs)
	start := time.Now()

	swg := sizedwaitgroup.New(parallel)
	for i := 0; i < runs; i++ {
		swg.Add()
		go func(idx int) {
			defer swg.Done()
			seed := seedBase + int64(idx)*seedStep
			all[idx] = runOnce(idx+1, seed, frames, friendlies, hostiles, neutrals)
			log.Debug().Int("run", idx+1).Int64("seed", seed).
				Dur("elapsed", all[idx].elapsed).Msg("run finished")
		}(i)
	}
	swg.Wait()

	for _, st := range all {
		printRun(st)
	}
	printAggregate(all, time.Since(start))
}

func runOnce(runIndex int, seed int64, frames, friendlies, hostiles, neutrals int) runStats {
	world := scenario.Generate(scenario.Params{
		Seed:       seed,
		Friendlies: friendlies,
		Hostiles:   hostiles,
		Neutrals:   neutrals,
	})
	s := overlay.NewScene(
		overlay.WithFrameSize(1280, 800),
	)
	s.Occluders = world.Occluders

	st := runStats{runIndex: runIndex, seed: seed, frames: frames, firstGhost: -1}
	begin := time.Now()
	for f := 0; f < frames; f++ {
		world.Step(frameDt)
		s.Units = world.Units
		s.Advance(frameDt)

		if n := s.Ghosts.Count(); n > st.peakGhosts {
			st.peakGhosts = n
		}
		labels := s.LabelResults()
		if len(labels) > st.peakLabels {
			st.peakLabels = len(labels)
		}
		st.labelsPlaced += len(labels)
		for _, l := range labels {
			if l.Displaced {
				st.labelsDisplaced++
			}
		}
	}
	st.elapsed = time.Since(begin)

	st.ghostsCreated = s.Log.CountCategory("ghost", "created")
	st.ghostsRemoved = s.Log.CountCategory("ghost", "removed")
	if created := s.Log.Filter("ghost", "created"); len(created) > 0 {
		st.firstGhost = created[0].Frame
	}
	return st
}

func printRun(st runStats) {
	fmt.Printf("--- run %d (seed %d) ---\n", st.runIndex, st.seed)
	fmt.Printf("  frames: %s in %s (%.0f fps headless)\n",
		humanize.Comma(int64(st.frames)),
		durafmt.Parse(st.elapsed.Round(time.Millisecond)).String(),
		float64(st.frames)/st.elapsed.Seconds())
	if st.firstGhost >= 0 {
		fmt.Printf("  ghosts: %d created, %d faded/cleared, peak %d, first at frame %d\n",
			st.ghostsCreated, st.ghostsRemoved, st.peakGhosts, st.firstGhost)
	} else {
		fmt.Printf("  ghosts: none\n")
	}
	fmt.Printf("  labels: %s placed, %s displaced (%.1f%%), peak %d per frame\n",
		humanize.Comma(int64(st.labelsPlaced)),
		humanize.Comma(int64(st.labelsDisplaced)),
		pct(st.labelsDisplaced, st.labelsPlaced), st.peakLabels)
	fmt.Println()
}

func printAggregate(all []runStats, wall time.Duration) {
	var frames, created, removed, placed, displaced int
	var busy time.Duration
	for _, st := range all {
		frames += st.frames
		created += st.ghostsCreated
		removed += st.ghostsRemoved
		placed += st.labelsPlaced
		displaced += st.labelsDisplaced
		busy += st.elapsed
	}
	perFrame := time.Duration(0)
	if frames > 0 {
		perFrame = busy / time.Duration(frames)
	}

	fmt.Printf("=== aggregate (%d runs) ===\n", len(all))
	fmt.Printf("  wall time:   %s\n", durafmt.Parse(wall.Round(time.Millisecond)).String())
	fmt.Printf("  frames:      %s (%s avg per frame)\n", humanize.Comma(int64(frames)), perFrame)
	fmt.Printf("  ghosts:      %d created / %d cleared\n", created, removed)
	fmt.Printf("  labels:      %s placed, %s displaced (%.1f%%)\n",
		humanize.Comma(int64(placed)), humanize.Comma(int64(displaced)), pct(displaced, placed))
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
