package datagen

import (
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

type Generator struct {
	Genes   []string
	Sampler Sampler
	Mode    FlushMode
	// Report receives the subset count of every generated size.
	Report io.Writer
	Log    *zap.Logger
}

func NewGenerator(sampler Sampler, mode FlushMode, report io.Writer, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		Genes:   DefaultGenes(),
		Sampler: sampler,
		Mode:    mode,
		Report:  report,
		Log:     log,
	}
}

// Generate builds the dataset over the first size genes.
func (g *Generator) Generate(size int) (*Dataset, error) {
	if size < 1 || size > len(g.Genes) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidSampleSize, size, len(g.Genes))
	}

	ps := NonEmptySubsets(g.Genes[:size])
	vals := g.Sampler.Dirichlet(len(ps))
	sort.Float64s(vals)

	ds := &Dataset{
		SampleSize: size,
		Subsets:    ps,
		Shuffled:   ShuffleSubsets(ps, g.Sampler, g.Mode),
		Weights:    vals,
	}

	g.Log.Debug("dataset generated",
		zap.Int("size", size),
		zap.Int("subsets", len(ps)),
		zap.Int("shuffled", len(ds.Shuffled)),
		zap.Float64("weightSum", floats.Sum(vals)),
	)
	if d := ds.Dropped(); d > 0 {
		g.Log.Warn("trailing size group not flushed, truncating output",
			zap.Int("size", size),
			zap.Stringer("mode", g.Mode),
			zap.Int("dropped", d),
		)
	}
	return ds, nil
}

// Run generates and writes one dataset per sample size, in order. The first
// failure aborts the run.
func (g *Generator) Run(sizes []int, sink Sink) error {
	for _, size := range sizes {
		ds, err := g.Generate(size)
		if err != nil {
			return err
		}
		if g.Report != nil {
			fmt.Fprintln(g.Report, len(ds.Subsets))
		}
		g.Log.Debug("writing dataset", zap.Stringer("dataset", ds))
		if err := sink.Write(ds); err != nil {
			return fmt.Errorf("sample size %d: %w", size, err)
		}
		g.Log.Info("dataset written",
			zap.Int("size", size),
			zap.Int("records", len(ds.Records())),
		)
	}
	return nil
}
