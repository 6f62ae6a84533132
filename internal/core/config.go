package core

// RuntimeConfig contains configuration passed to platform layers at start.
// The grid is sized from the screen; the seed makes runs reproducible.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means use current time
	Duration int   // Ticks to run before stopping, 0 means unbounded
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GridSize returns the simulation grid size for the screen, reserving
// hudRows terminal rows. Each terminal row shows two grid rows.
func (c RuntimeConfig) GridSize(hudRows int) (w, h int) {
	w = Max(c.ScreenW, 1)
	h = Max((c.ScreenH-hudRows)*2, 2)
	return w, h
}
