package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func sandColumn() *sim.Grid {
	g := sim.New(1, 5, sim.WithSeed(1))
	g.Spawn(sim.NewSand, sim.C(0, 0))
	return g
}

func TestRunStopsAtDuration(t *testing.T) {
	g := sandColumn()
	sum := Run(context.Background(), g, Options{Duration: 3, Logger: quietLogger()})

	if sum.Ticks != 3 {
		t.Errorf("Ticks = %d, expected 3", sum.Ticks)
	}
	if g.Tick() != 3 {
		t.Errorf("grid tick = %d, expected 3", g.Tick())
	}
	if sum.Moves != 3 {
		t.Errorf("Moves = %d, expected 3", sum.Moves)
	}
	if sum.Counts[sim.KindMovableSolid] != 1 {
		t.Errorf("sand count = %d, expected 1", sum.Counts[sim.KindMovableSolid])
	}
}

func TestRunStopWhenSettled(t *testing.T) {
	g := sandColumn()
	sum := Run(context.Background(), g, Options{StopWhenSettled: true, Logger: quietLogger()})

	// Four falls then one quiet tick.
	if sum.Ticks != 5 {
		t.Errorf("Ticks = %d, expected 5", sum.Ticks)
	}
	if !sum.Settled {
		t.Error("Settled should be true")
	}
	if g.At(sim.C(0, 4)).Kind != sim.KindMovableSolid {
		t.Error("sand should rest on the floor")
	}
}

func TestRunHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum := Run(ctx, sandColumn(), Options{Logger: quietLogger()})
	if !sum.Interrupted {
		t.Error("Interrupted should be true")
	}
	if sum.Ticks != 0 {
		t.Errorf("Ticks = %d, expected 0", sum.Ticks)
	}
}

func TestRunTickRatePacing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sum := Run(ctx, sandColumn(), Options{TickRate: 100, Duration: 5, Logger: quietLogger()})
	if sum.Ticks != 5 {
		t.Errorf("Ticks = %d, expected 5", sum.Ticks)
	}
	if sum.Elapsed < 40*time.Millisecond {
		t.Errorf("Elapsed = %v, expected at least 40ms at 100 ticks/s", sum.Elapsed)
	}
	if sum.TicksPerSecond() <= 0 {
		t.Error("TicksPerSecond should be positive")
	}
}

func TestRunLogsStats(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})

	Run(context.Background(), sandColumn(), Options{Duration: 4, StatsEvery: 2, Logger: logger})

	if got := strings.Count(buf.String(), "moves="); got != 2 {
		t.Errorf("logged %d stats lines, expected 2:\n%s", got, buf.String())
	}
}

func TestProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")
	ran := false

	if err := Profile(path, func() { ran = true }); err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if !ran {
		t.Error("Profile did not run fn")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("profile file missing: %v", err)
	}

	if err := Profile(filepath.Join(t.TempDir(), "missing", "cpu.prof"), func() {}); err == nil {
		t.Error("Profile into a missing directory should fail")
	}
}
