package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"pdftools/internal/logging"
)

// startProfilers starts CPU profiling into cpuProfile and arranges for a heap profile to be written
// to memProfile. Empty paths disable the respective profiler. The returned func stops both.
func startProfilers(cpuProfile, memProfile string) (func(), error) {
	var cpuProfileFile *os.File
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return nil, fmt.Errorf("creating CPU profile: %w", err)
		}
		runtime.SetCPUProfileRate(500)
		if err = pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("starting CPU profiler: %w", err)
		}
		cpuProfileFile = f
	}

	return func() {
		logger := logging.BuildLogger()
		if cpuProfileFile != nil {
			pprof.StopCPUProfile()
			if err := cpuProfileFile.Close(); err != nil {
				logger.WithError(err).Error("Error closing CPU profile")
			}
		}
		if memProfile != "" {
			if err := writeHeapProfile(memProfile); err != nil {
				logger.WithError(err).Error("Error writing heap profile")
			}
		}
	}, nil
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
