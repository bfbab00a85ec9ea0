package shapley

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"shapley_datasets/src/datagen"
)

const data = `
Google,0.18
Meta,0.04
Microsoft,0.08
Meta Google,0.1
Microsoft Google,0.26
Meta Microsoft,0.07
Meta Microsoft Google,0.27
`

func mockData() *strings.Reader {
	return strings.NewReader(strings.TrimSpace(data))
}

func mockRecords() [][]string {
	return [][]string{{"Google", "0.18"}, {"Meta", "0.04"}, {"Microsoft", "0.08"}, {"Meta Google", "0.1"}, {"Microsoft Google", "0.26"}, {"Meta Microsoft", "0.07"}, {"Meta Microsoft Google", "0.27"}}
}

func mockPlayers() []string {
	return []string{"Google", "Meta", "Microsoft"}
}

func mockWorths() map[uint16]float64 {
	// Google=1, Meta=2, Microsoft=4
	return map[uint16]float64{1: 0.18, 2: 0.04, 4: 0.08, 3: 0.32, 5: 0.52, 6: 0.19, 7: 1}
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    [][]string
		wantErr error
	}{
		{
			name: "simple",
			in:   strings.TrimSpace(data),
			want: mockRecords(),
		},
		{
			name:    "short record",
			in:      "Google,0.5\nMeta",
			wantErr: ErrShortRecord,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Prepare(strings.NewReader(tt.in))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandle(t *testing.T) {
	g, err := Handle(mockRecords())
	require.NoError(t, err)

	assert.Equal(t, mockPlayers(), g.Players)
	assert.Equal(t, []uint16{1, 2, 4}, g.Bitset)
	require.Len(t, g.Worths, len(mockWorths()))
	for key, want := range mockWorths() {
		assert.InDelta(t, want, g.Worths[key], epsilon, "coalition %b", key)
	}
}

func TestHandleErrors(t *testing.T) {
	_, err := Handle(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Handle([][]string{{"Google", "x"}})
	assert.Error(t, err)

	tooMany := make([]string, maxPlayers+1)
	for i := range tooMany {
		tooMany[i] = datagen.DefaultGenes()[i]
	}
	_, err = Handle([][]string{{strings.Join(tooMany, " "), "1"}})
	assert.ErrorIs(t, err, ErrTooManyPlayers)
}

func TestErrorCoalesce(t *testing.T) {
	errFirst := errors.New("first")
	ran := []int{}
	stage := func(i int, err error) func() error {
		return func() error {
			ran = append(ran, i)
			return err
		}
	}

	err := errorCoalesce(stage(0, nil), stage(1, errFirst), stage(2, errors.New("second")))
	assert.ErrorIs(t, err, errFirst)
	assert.Equal(t, []int{0, 1}, ran)

	ran = ran[:0]
	assert.NoError(t, errorCoalesce(stage(0, nil), stage(1, nil)))
	assert.Equal(t, []int{0, 1}, ran)
}

func TestHandleSkipsWorthsOnPlayerError(t *testing.T) {
	tooMany := datagen.DefaultGenes()[:maxPlayers+1]
	_, err := Handle([][]string{
		{strings.Join(tooMany, " "), "1"},
		{"Google", "not a number"},
	})
	assert.ErrorIs(t, err, ErrTooManyPlayers)
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	closeLogged(failingCloser{}, "N9", log)
	assert.Zero(t, logs.Len())

	errClose := errors.New("disk gone")
	closeLogged(failingCloser{err: errClose}, "N9", log)
	entries := logs.FilterMessage("closing dataset").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "N9", entries[0].ContextMap()["path"])
	assert.Equal(t, errClose.Error(), entries[0].ContextMap()["error"])
}

func TestCompute(t *testing.T) {
	records, err := Prepare(mockData())
	require.NoError(t, err)
	g, err := Handle(records)
	require.NoError(t, err)

	got, sum := Compute(g)
	want := map[string]float64{"Google": 0.45, "Meta": 0.215, "Microsoft": 0.335}
	require.Len(t, got, len(want))
	for key, value := range want {
		assert.InDelta(t, value, got[key], epsilon, key)
	}
	assert.False(t, notEqualsOne(sum), "sum = %v", sum)
}

func TestMakeWeight(t *testing.T) {
	// 1!1!/3! and 2!0!/3!
	w := makeWeight(3)
	assert.InDelta(t, 1.0/3, w(0), epsilon)
	assert.InDelta(t, 1.0/6, w(1), epsilon)
	assert.InDelta(t, 1.0/3, w(2), epsilon)
}

func TestRanking(t *testing.T) {
	r := &Result{Values: map[string]float64{"Google": 0.45, "Meta": 0.215, "Microsoft": 0.335}}
	assert.Equal(t, []Entry{
		{Gene: "Meta", Value: 0.215},
		{Gene: "Microsoft", Value: 0.335},
		{Gene: "Google", Value: 0.45},
	}, r.Ranking())
	assert.True(t, strings.HasPrefix(r.String(), "Gene: Meta, Shapley value: 0.215000\n"))
}

func generate(t *testing.T, size int, mode datagen.FlushMode, format datagen.Format) string {
	t.Helper()
	dir := t.TempDir()
	g := datagen.NewGenerator(datagen.NewSampler(datagen.NewSource(77)), mode, nil, nil)
	require.NoError(t, g.Run([]int{size}, datagen.NewSink(format, dir)))
	return filepath.Join(dir, datagen.FileName(size))
}

func TestSolveGeneratedDataset(t *testing.T) {
	path := generate(t, 6, datagen.FlushCorrected, datagen.FormatBoth)

	for _, p := range []string{path, path + ".xlsx"} {
		res, err := NewSolver(nil).Solve(p)
		require.NoError(t, err, p)
		assert.Len(t, res.Values, 6)
		assert.InDelta(t, 1.0, res.CheckSum, epsilon)
		for gene, v := range res.Values {
			assert.GreaterOrEqual(t, v, 0.0, gene)
		}
	}
}

func TestSolveFaithfulDatasetNotNormalized(t *testing.T) {
	path := generate(t, 5, datagen.FlushFaithful, datagen.FormatText)

	_, err := NewSolver(nil).Solve(path)
	assert.ErrorIs(t, err, ErrNotNormalized)
}

func TestSolveLogsGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "N3")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(data)), 0644))
	core, logs := observer.New(zap.DebugLevel)

	_, err := NewSolver(zap.New(core)).Solve(path)
	require.NoError(t, err)

	entries := logs.FilterMessage("game loaded").All()
	require.Len(t, entries, 1)
	game, ok := entries[0].ContextMap()["game"].(string)
	require.True(t, ok)
	assert.Contains(t, game, "N. players: 3")
	assert.Contains(t, game, "N. coalitions: 7")
	assert.Contains(t, game, "Players: [ Google Meta Microsoft ]")
}

func TestSolveMissingFile(t *testing.T) {
	_, err := NewSolver(nil).Solve(filepath.Join(t.TempDir(), "N9"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func BenchmarkPrepare(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Prepare(mockData())
	}
}

func BenchmarkCompute(b *testing.B) {
	g, _ := Handle(mockRecords())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compute(g)
	}
}
