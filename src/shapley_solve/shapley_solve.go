package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"shapley_datasets/src/config"
	"shapley_datasets/src/logging"
	"shapley_datasets/src/profiling"
	"shapley_datasets/src/shapley"
)

const (
	instKey         = "inst"
	profileDirKey   = "profile-dir"
	cpuProfileKey   = "cpuprofile"
	memProfileKey   = "memprofile"
	blockProfileKey = "blockprofile"
	traceKey        = "trace"
)

func addFlags(fs *pflag.FlagSet) {
	fs.StringSlice(instKey, nil, "A list of dataset file paths, separated by commas")
	fs.String(profileDirKey, ".", "The directory profiles are written to")
	fs.Bool(cpuProfileKey, false, "Write a CPU profile to cpu.prof")
	fs.Bool(memProfileKey, false, "Write a memory profile to mem.prof")
	fs.Bool(blockProfileKey, false, "Write a block profile to block.prof")
	fs.Bool(traceKey, false, "Write an execution trace to trace.out")
}

func main() {
	v, err := config.BuildViper("shapley", addFlags, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New("shapley", v.GetString(config.LogLevelKey))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid log level:", err)
		os.Exit(1)
	}
	defer log.Sync()

	paths := v.GetStringSlice(instKey)
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Must specify at least a path")
		os.Exit(1)
	}

	profCfg := profiling.Config{
		Dir:   v.GetString(profileDirKey),
		CPU:   v.GetBool(cpuProfileKey),
		Mem:   v.GetBool(memProfileKey),
		Block: v.GetBool(blockProfileKey),
		Trace: v.GetBool(traceKey),
	}
	if profCfg.Enabled() {
		prof, err := profiling.Start(profCfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer func() {
			if err := prof.Stop(); err != nil {
				log.Warn("writing profiles", zap.Error(err))
			}
		}()
	}

	solver := shapley.NewSolver(log)
	for _, p := range paths {
		fmt.Printf("Solving %v...\n", p)
		res, err := solver.Solve(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "An error occured while solving instance \"%v\": %v. Skipping...\n", p, err)
			continue
		}
		fmt.Printf("Instance %v:\n%v\n\n", p, res)
	}
}
