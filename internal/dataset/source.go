package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// Source reads a tabular file into a dataframe.
type Source interface {
	CanRead(path string) bool
	Read(path string, opt Options) (dataframe.DataFrame, error)
}

var registry []Source

// Register adds a source implementation to the registry.
func Register(s Source) {
	registry = append(registry, s)
}

func init() {
	Register(xlsxSource{})
	Register(csvSource{})
}

// readFrame selects a source by filename; delimited text is the fallback.
func readFrame(path string, opt Options) (dataframe.DataFrame, error) {
	for _, s := range registry {
		if s.CanRead(path) {
			return s.Read(path, opt)
		}
	}
	return csvSource{}.Read(path, opt)
}

type csvSource struct{}

func (csvSource) CanRead(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (csvSource) Read(path string, opt Options) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	df := dataframe.ReadCSV(f,
		dataframe.WithDelimiter(delim),
		dataframe.WithTypes(columnTypes()),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", df.Err)
	}
	return df, nil
}

type xlsxSource struct{}

func (xlsxSource) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

func (xlsxSource) Read(path string, opt Options) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()
	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q is empty", sheet)
	}
	// GetRows trims trailing empty cells; pad to the header width
	width := len(rows[0])
	for i, r := range rows {
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			rows[i] = padded
		}
	}
	df := dataframe.LoadRecords(rows, dataframe.WithTypes(columnTypes()))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse sheet %q: %w", sheet, df.Err)
	}
	return df, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
