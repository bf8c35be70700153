// Package export writes report artifacts to files other tools can read.
package export

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/xuri/excelize/v2"
)

const (
	indexSheet    = "resumen"
	maxSheetName  = 31
	firstDataRow  = 4
	tableSpacing  = 2
	indexColWidth = 28
)

// Workbook lays every artifact out on its own sheet. Gradient tables keep
// their cell colours; chart artifacts are exported as their backing data.
func Workbook(arts []*analysis.Artifact) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", indexSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	w := &workbookWriter{f: f, styles: map[string]int{}}
	if err := w.writeIndex(arts); err != nil {
		return nil, err
	}
	for _, a := range arts {
		if err := w.writeArtifact(a); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", a.ID, err)
		}
	}
	return f, nil
}

// WriteWorkbook saves the workbook to path.
func WriteWorkbook(arts []*analysis.Artifact, path string) error {
	f, err := Workbook(arts)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// SheetName maps an artifact id to a valid sheet name.
func SheetName(id string) string {
	if len(id) > maxSheetName {
		id = id[:maxSheetName]
	}
	return id
}

type workbookWriter struct {
	f      *excelize.File
	styles map[string]int
	bold   int
}

func (w *workbookWriter) boldStyle() (int, error) {
	if w.bold != 0 {
		return w.bold, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("bold style: %w", err)
	}
	w.bold = id
	return id, nil
}

// cellStyle returns a cached fill style for a background/text pair.
func (w *workbookWriter) cellStyle(bg, fg string) (int, error) {
	key := bg + "/" + fg
	if id, ok := w.styles[key]; ok {
		return id, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bg}},
		Font:      &excelize.Font{Color: fg},
		NumFmt:    2,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return 0, fmt.Errorf("cell style: %w", err)
	}
	w.styles[key] = id
	return id, nil
}

func (w *workbookWriter) writeIndex(arts []*analysis.Artifact) error {
	bold, err := w.boldStyle()
	if err != nil {
		return err
	}
	for col, h := range []string{"hoja", "sección", "título"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := w.f.SetCellValue(indexSheet, cell, h); err != nil {
			return err
		}
	}
	if err := w.f.SetCellStyle(indexSheet, "A1", "C1", bold); err != nil {
		return err
	}
	for i, a := range arts {
		row := []interface{}{SheetName(a.ID), a.Section, strings.TrimSpace(a.Title())}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.f.SetSheetRow(indexSheet, cell, &row); err != nil {
			return err
		}
	}
	return w.f.SetColWidth(indexSheet, "A", "C", indexColWidth)
}

func (w *workbookWriter) writeArtifact(a *analysis.Artifact) error {
	sheet := SheetName(a.ID)
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	bold, err := w.boldStyle()
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheet, "A1", strings.TrimSpace(a.Title())); err != nil {
		return err
	}
	if err := w.f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheet, "A2", a.Section); err != nil {
		return err
	}

	row := firstDataRow
	tables := a.Tables
	if len(tables) == 0 {
		for _, d := range a.Data {
			tables = append(tables, analysis.Plain(d.Name, d))
		}
	}
	for _, st := range tables {
		next, err := w.writeTable(sheet, row, st)
		if err != nil {
			return err
		}
		row = next + tableSpacing
	}
	if len(tables) == 0 && a.Chart != nil && len(a.Chart.Panels) > 0 {
		next, err := w.writePoints(sheet, row, a.Chart)
		if err != nil {
			return err
		}
		row = next + tableSpacing
	}
	for _, c := range a.Commentary {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := w.f.SetCellValue(sheet, cell, c); err != nil {
			return err
		}
		row++
	}
	return w.f.SetColWidth(sheet, "A", "A", indexColWidth)
}

// writeTable writes st starting at row and returns the first free row.
func (w *workbookWriter) writeTable(sheet string, row int, st analysis.StyledTable) (int, error) {
	f := st.Frame
	if st.Caption != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := w.f.SetCellValue(sheet, cell, st.Caption); err != nil {
			return 0, err
		}
		row++
	}
	header := []interface{}{f.IndexName}
	for _, c := range f.Columns {
		header = append(header, c)
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := w.f.SetSheetRow(sheet, cell, &header); err != nil {
		return 0, err
	}
	bold, err := w.boldStyle()
	if err != nil {
		return 0, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), row)
	if err := w.f.SetCellStyle(sheet, cell, last, bold); err != nil {
		return 0, err
	}
	row++
	for i, label := range f.Index {
		vals := []interface{}{label}
		for _, v := range f.Values[i] {
			vals = append(vals, v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := w.f.SetSheetRow(sheet, cell, &vals); err != nil {
			return 0, err
		}
		if i < len(st.Background) {
			for j := range f.Values[i] {
				id, err := w.cellStyle(st.Background[i][j], st.Foreground[i][j])
				if err != nil {
					return 0, err
				}
				c, _ := excelize.CoordinatesToCellName(j+2, row)
				if err := w.f.SetCellStyle(sheet, c, c, id); err != nil {
					return 0, err
				}
			}
		}
		row++
	}
	return row, nil
}

// writePoints dumps scatter panels as (panel, x, y) rows.
func (w *workbookWriter) writePoints(sheet string, row int, spec *analysis.ChartSpec) (int, error) {
	header := []interface{}{"panel", spec.XLabel, spec.YLabel}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := w.f.SetSheetRow(sheet, cell, &header); err != nil {
		return 0, err
	}
	row++
	for _, p := range spec.Panels {
		for _, s := range p.Series {
			for _, pt := range s.Points {
				vals := []interface{}{p.Title, pt.X, pt.Y}
				cell, _ := excelize.CoordinatesToCellName(1, row)
				if err := w.f.SetSheetRow(sheet, cell, &vals); err != nil {
					return 0, err
				}
				row++
			}
		}
	}
	return row, nil
}
