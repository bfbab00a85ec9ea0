package shapley

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"gopkg.in/dnaeon/go-priorityqueue.v1"
)

type Result struct {
	Values   map[string]float64
	CheckSum float64
	Elapsed  time.Duration
}

type Entry struct {
	Gene  string
	Value float64
}

type Solver struct {
	Log *zap.Logger
}

func NewSolver(log *zap.Logger) *Solver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{Log: log}
}

// Solve loads the dataset at path and computes its Shapley values. The values
// must sum to one.
func (s *Solver) Solve(path string) (*Result, error) {
	start := time.Now()
	g, err := Load(path, s.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data, %w", err)
	}
	s.Log.Debug("game loaded",
		zap.String("path", path),
		zap.Int("players", len(g.Players)),
		zap.Int("coalitions", len(g.Worths)),
		zap.Stringer("game", g),
	)

	values, checkSum := Compute(g)
	res := &Result{
		Values:   values,
		CheckSum: checkSum,
		Elapsed:  time.Since(start),
	}
	if notEqualsOne(checkSum) {
		return res, fmt.Errorf("%w, %v", ErrNotNormalized, checkSum)
	}
	s.Log.Info("shapley values computed",
		zap.String("path", path),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Ranking lists the genes by ascending Shapley value.
func (r *Result) Ranking() []Entry {
	pq := priorityqueue.New[string, float64](priorityqueue.MinHeap)
	for _, gene := range maps.Keys(r.Values) {
		pq.Put(gene, r.Values[gene])
	}

	ranking := make([]Entry, 0, pq.Len())
	for pq.Len() > 0 {
		item := pq.Get()
		ranking = append(ranking, Entry{Gene: item.Value, Value: item.Priority})
	}
	return ranking
}

func (r *Result) String() string {
	s := new(strings.Builder)
	for _, e := range r.Ranking() {
		fmt.Fprintf(s, "Gene: %s, Shapley value: %f\n", e.Gene, e.Value)
	}
	fmt.Fprintf(s, "Measure time: %s", r.Elapsed)
	return s.String()
}
