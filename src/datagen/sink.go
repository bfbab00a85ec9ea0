package datagen

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Sink interface {
	Write(ds *Dataset) error
}

type Format int

const (
	FormatText Format = iota
	FormatXLSX
	FormatBoth
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return FormatText, nil
	case "xlsx":
		return FormatXLSX, nil
	case "both":
		return FormatBoth, nil
	default:
		return FormatText, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// NewSink returns the sink writing datasets of the given format under dir.
func NewSink(format Format, dir string) Sink {
	switch format {
	case FormatXLSX:
		return &XLSXSink{Dir: dir}
	case FormatBoth:
		return MultiSink{&TextSink{Dir: dir}, &XLSXSink{Dir: dir}}
	default:
		return &TextSink{Dir: dir}
	}
}

// FileName is the base name of the dataset file for a sample size.
func FileName(sampleSize int) string {
	return "N" + strconv.Itoa(sampleSize)
}

// WriteText writes one "tokens,weight" line per record.
func WriteText(w io.Writer, ds *Dataset) error {
	bw := bufio.NewWriter(w)
	for _, r := range ds.Records() {
		if _, err := bw.WriteString(r.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type TextSink struct {
	Dir string
}

func (ts *TextSink) Write(ds *Dataset) (err error) {
	if err := os.MkdirAll(ts.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(ts.Dir, FileName(ds.SampleSize))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := WriteText(file, ds); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

type XLSXSink struct {
	Dir string
}

func (xs *XLSXSink) Write(ds *Dataset) (err error) {
	if err := os.MkdirAll(xs.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	name := FileName(ds.SampleSize)
	path := filepath.Join(xs.Dir, name+".xlsx")

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("opening stream writer: %w", err)
	}
	for i, r := range ds.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, []interface{}{strings.Join(r.Subset, " "), r.Weight}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

type MultiSink []Sink

func (ms MultiSink) Write(ds *Dataset) error {
	for _, s := range ms {
		if err := s.Write(ds); err != nil {
			return err
		}
	}
	return nil
}
