package profiling

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

const (
	cpuFile   = "cpu.prof"
	memFile   = "mem.prof"
	blockFile = "block.prof"
	traceFile = "trace.out"
)

type Config struct {
	Dir   string
	CPU   bool
	Mem   bool
	Block bool
	Trace bool
}

func (c Config) Enabled() bool {
	return c.CPU || c.Mem || c.Block || c.Trace
}

type Session struct {
	config Config
	stops  []func() error
}

// Start begins every profile enabled in c. Stop must be called to flush them.
func Start(c Config) (*Session, error) {
	s := &Session{config: c}
	if c.CPU {
		f, err := os.Create(filepath.Join(c.Dir, cpuFile))
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
		s.stops = append(s.stops, func() error {
			pprof.StopCPUProfile()
			return f.Close()
		})
	}
	if c.Block {
		f, err := os.Create(filepath.Join(c.Dir, blockFile))
		if err != nil {
			s.Stop()
			return nil, fmt.Errorf("could not create block profile: %w", err)
		}
		runtime.SetBlockProfileRate(1)
		s.stops = append(s.stops, func() error {
			defer runtime.SetBlockProfileRate(0)
			return errors.Join(pprof.Lookup("block").WriteTo(f, 0), f.Close())
		})
	}
	if c.Trace {
		f, err := os.Create(filepath.Join(c.Dir, traceFile))
		if err != nil {
			s.Stop()
			return nil, fmt.Errorf("failed to create trace output file: %w", err)
		}
		if err := trace.Start(f); err != nil {
			f.Close()
			s.Stop()
			return nil, fmt.Errorf("failed to start trace: %w", err)
		}
		s.stops = append(s.stops, func() error {
			trace.Stop()
			return f.Close()
		})
	}
	return s, nil
}

// Stop ends the running profiles in reverse order and writes the heap
// profile when requested.
func (s *Session) Stop() error {
	var errs []error
	for i := len(s.stops) - 1; i >= 0; i-- {
		errs = append(errs, s.stops[i]())
	}
	s.stops = nil

	if s.config.Mem {
		errs = append(errs, writeHeapProfile(filepath.Join(s.config.Dir, memFile)))
	}
	return errors.Join(errs...)
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer f.Close()
	runtime.GC() // get up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}
