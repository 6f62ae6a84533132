package runner

import (
	"fmt"
	"os"
	"runtime/pprof"
)

// Profile runs fn while writing a CPU profile to path.
func Profile(path string, fn func()) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("runner: create profile: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("runner: start profile: %w", err)
	}
	fn()
	pprof.StopCPUProfile()
	return nil
}
