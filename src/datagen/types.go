package datagen

import (
	"fmt"
	"strconv"
	"strings"
)

type FlushMode int

const (
	// FlushFaithful drains the group buffer only on size boundaries, so the
	// last size group never reaches the shuffled list.
	FlushFaithful FlushMode = iota
	// FlushCorrected also drains whatever is left in the buffer at the end.
	FlushCorrected
)

const (
	faithfulStr  = "faithful"
	correctedStr = "corrected"
)

func ParseFlushMode(s string) (FlushMode, error) {
	switch strings.ToLower(s) {
	case faithfulStr:
		return FlushFaithful, nil
	case correctedStr:
		return FlushCorrected, nil
	default:
		return FlushFaithful, fmt.Errorf("%w: %q", ErrUnknownFlushMode, s)
	}
}

func (m FlushMode) String() string {
	switch m {
	case FlushFaithful:
		return faithfulStr
	case FlushCorrected:
		return correctedStr
	default:
		return "unknown"
	}
}

type Dataset struct {
	SampleSize int
	// Subsets holds the non-empty subsets in canonical enumeration order.
	Subsets  [][]string
	Shuffled [][]string
	// Weights is sorted ascending and has one entry per subset.
	Weights []float64
}

type Record struct {
	Subset []string
	Weight float64
}

// Records pairs shuffled subsets and weights by position. Pairs past the end
// of the shorter slice are not produced.
func (ds *Dataset) Records() []Record {
	n := min(len(ds.Shuffled), len(ds.Weights))
	records := make([]Record, n)
	for i := range n {
		records[i] = Record{
			Subset: ds.Shuffled[i],
			Weight: ds.Weights[i],
		}
	}
	return records
}

// Dropped is the number of intended lines that have no shuffled subset.
func (ds *Dataset) Dropped() int {
	return max(0, len(ds.Weights)-len(ds.Shuffled))
}

func (r Record) String() string {
	return strings.Join(r.Subset, " ") + "," + formatWeight(r.Weight)
}

// formatWeight renders w in its shortest form, keeping a fractional part on
// integral values ("1.0", not "1").
func formatWeight(w float64) string {
	s := strconv.FormatFloat(w, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func (ds *Dataset) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "Sample size: %d\n", ds.SampleSize)
	fmt.Fprintf(s, "N. subsets: %d\n", len(ds.Subsets))
	fmt.Fprintf(s, "N. records: %d\n", min(len(ds.Shuffled), len(ds.Weights)))
	if d := ds.Dropped(); d > 0 {
		fmt.Fprintf(s, "Dropped: %d\n", d)
	}
	return s.String()
}
