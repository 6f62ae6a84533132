// Package runner drives a grid without a display. It is used for headless
// and debug runs and for profiling.
package runner

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// Options controls a headless run.
type Options struct {
	TickRate        int         // Ticks per second, 0 = as fast as possible
	Duration        int         // Ticks to run, 0 = until ctx is done
	StatsEvery      int         // Log stats every N ticks, 0 = never
	StopWhenSettled bool        // Stop after the first tick with no moves
	Logger          *log.Logger // nil uses log.Default()
}

// Summary describes a finished run.
type Summary struct {
	Ticks       uint64
	Moves       int
	Elapsed     time.Duration
	Counts      map[sim.Kind]int
	Settled     bool // a tick made no moves
	Interrupted bool // ctx ended the run
}

// Run steps g until the duration is reached, the grid settles (if asked)
// or ctx is done. Cancellation is reported in the summary, not as an error.
func Run(ctx context.Context, g *sim.Grid, opts Options) Summary {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var tick <-chan time.Time
	if opts.TickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(opts.TickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	start := time.Now()
	var sum Summary
	logger.Debug("run started",
		"width", g.Width(),
		"height", g.Height(),
		"tick_rate", opts.TickRate,
		"duration", opts.Duration,
	)

	for opts.Duration == 0 || sum.Ticks < uint64(opts.Duration) {
		if tick != nil {
			select {
			case <-ctx.Done():
				sum.Interrupted = true
			case <-tick:
			}
		} else if ctx.Err() != nil {
			sum.Interrupted = true
		}
		if sum.Interrupted {
			break
		}

		res := g.Step()
		sum.Ticks++
		sum.Moves += len(res.Moves)

		if opts.StatsEvery > 0 && sum.Ticks%uint64(opts.StatsEvery) == 0 {
			logStats(logger, g, res)
		}
		if len(res.Moves) == 0 {
			sum.Settled = true
			if opts.StopWhenSettled {
				break
			}
		}
	}

	sum.Elapsed = time.Since(start)
	sum.Counts = g.Counts()
	logger.Debug("run finished",
		"ticks", sum.Ticks,
		"moves", sum.Moves,
		"elapsed", sum.Elapsed,
		"interrupted", sum.Interrupted,
	)
	return sum
}

// TicksPerSecond returns the achieved tick rate.
func (s Summary) TicksPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Ticks) / s.Elapsed.Seconds()
}

func logStats(logger *log.Logger, g *sim.Grid, res sim.StepResult) {
	counts := g.Counts()
	logger.Info("tick",
		"tick", res.Tick,
		"moves", len(res.Moves),
		"sand", counts[sim.KindMovableSolid],
		"water", counts[sim.KindLiquid],
		"solid", counts[sim.KindImmovableSolid],
	)
}
