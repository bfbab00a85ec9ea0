package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"shapley_datasets/src/config"
	"shapley_datasets/src/datagen"
	"shapley_datasets/src/logging"
)

const (
	outKey    = "out"
	sizesKey  = "sizes"
	seedKey   = "seed"
	modeKey   = "mode"
	formatKey = "format"
)

func addFlags(fs *pflag.FlagSet) {
	fs.String(outKey, "data", "The output directory")
	fs.IntSlice(sizesKey, datagen.DefaultSampleSizes(), "The sample sizes, one output file each")
	fs.Uint64(seedKey, 0, "The random seed, 0 draws one from the clock")
	fs.String(modeKey, "faithful", "The group flush mode (faithful, corrected)")
	fs.String(formatKey, "text", "The output format (text, xlsx, both)")
}

func main() {
	v, err := config.BuildViper("datagen", addFlags, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New("generator", v.GetString(config.LogLevelKey))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid log level:", err)
		os.Exit(1)
	}
	defer log.Sync()

	mode, err := datagen.ParseFlushMode(v.GetString(modeKey))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	format, err := datagen.ParseFormat(v.GetString(formatKey))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sizes := v.GetIntSlice(sizesKey)
	if len(sizes) == 0 {
		fmt.Fprintln(os.Stderr, "Must specify at least a sample size")
		os.Exit(1)
	}

	sampler := datagen.NewSampler(datagen.NewSource(v.GetUint64(seedKey)))
	gen := datagen.NewGenerator(sampler, mode, os.Stdout, log)
	if err := gen.Run(sizes, datagen.NewSink(format, v.GetString(outKey))); err != nil {
		log.Sync()
		fmt.Fprintln(os.Stderr, "Generation failed:", err)
		os.Exit(1)
	}
}
