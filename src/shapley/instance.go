package shapley

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

const maxPlayers = 16

type Game struct {
	Players []string
	// Bitset holds the coalition bit of Players[i] at index i.
	Bitset []uint16
	// Worths maps a coalition to the sum of the values of all its
	// sub-coalitions, itself included.
	Worths map[uint16]float64
}

// errorCoalesce runs stages in order and stops at the first failure.
func errorCoalesce(stages ...func() error) error {
	for _, stage := range stages {
		if err := stage(); err != nil {
			return err
		}
	}
	return nil
}

// closeLogged closes c, logging a failure. Read paths have already consumed
// their data, so a close error cannot invalidate the result.
func closeLogged(c io.Closer, path string, log *zap.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("closing dataset", zap.String("path", path), zap.Error(err))
	}
}

// Prepare splits every line of r on commas.
func Prepare(r io.Reader) ([][]string, error) {
	records := make([][]string, 0)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		record := strings.Split(text, ",")
		if l := len(record); l < 2 {
			return nil, fmt.Errorf("%w: line %d has %d", ErrShortRecord, line, l)
		}
		records = append(records, record)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return records, nil
}

// ReadXLSX reads the records of the first sheet of an xlsx dataset.
func ReadXLSX(path string, log *zap.Logger) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer closeLogged(f, path, log)

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyDataset
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	for i, row := range rows {
		if l := len(row); l < 2 {
			return nil, fmt.Errorf("%w: row %d has %d", ErrShortRecord, i+1, l)
		}
	}
	return rows, nil
}

func (g *Game) parsePlayers(records [][]string) error {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, p := range strings.Fields(rec[0]) {
			seen[p] = struct{}{}
		}
	}
	if len(seen) > maxPlayers {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPlayers, len(seen), maxPlayers)
	}

	g.Players = maps.Keys(seen)
	sort.Strings(g.Players)
	g.Bitset = make([]uint16, len(g.Players))
	for i := range g.Players {
		g.Bitset[i] = 1 << i
	}
	return nil
}

func (g *Game) parseWorths(records [][]string) error {
	mapBits := make(map[string]uint16, len(g.Players))
	for i, p := range g.Players {
		mapBits[p] = g.Bitset[i]
	}

	cValues := make(map[uint16]float64, len(records))
	for i, rec := range records {
		var coalition uint16
		for _, p := range strings.Fields(rec[0]) {
			coalition |= mapBits[p]
		}
		cValue, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return fmt.Errorf("parsing value of record %d: %w", i+1, err)
		}
		cValues[coalition] = cValue
	}

	g.Worths = make(map[uint16]float64, len(cValues))
	for coalition := range cValues {
		var worth float64
		for sub, cValue := range cValues {
			if sub&^coalition == 0 {
				worth += cValue
			}
		}
		g.Worths[coalition] = worth
	}
	return nil
}

// Handle builds the game described by records. Players are the sorted union
// of the tokens in the first field; the second field is the value the
// coalition adds on top of its sub-coalitions.
func Handle(records [][]string) (*Game, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	g := new(Game)
	err := errorCoalesce(
		func() error { return g.parsePlayers(records) },
		func() error { return g.parseWorths(records) },
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func readRecords(path string, log *zap.Logger) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, log)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeLogged(file, path, log)
	return Prepare(file)
}

// Load reads a text or xlsx dataset and builds its game. Close failures are
// reported to log, which must not be nil.
func Load(path string, log *zap.Logger) (*Game, error) {
	records, err := readRecords(path, log)
	if err != nil {
		return nil, err
	}
	return Handle(records)
}

func (g *Game) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "N. players: %d\n", len(g.Players))
	fmt.Fprintf(s, "N. coalitions: %d\n", len(g.Worths))
	s.WriteString("Players: [ ")
	for _, p := range g.Players {
		s.WriteString(p)
		s.WriteString(" ")
	}
	s.WriteString("]")
	return s.String()
}
