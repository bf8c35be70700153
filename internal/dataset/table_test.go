package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/edareport/internal/dataset/datasettest"
	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

func loadFixture(t *testing.T) *Table {
	t.Helper()
	p := datasettest.WriteCSV(t, t.TempDir(), datasettest.Rows())
	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tbl
}

func TestLoadDerivesColumns(t *testing.T) {
	tbl := loadFixture(t)
	if tbl.Rows() != 12 {
		t.Fatalf("rows = %d, want 12", tbl.Rows())
	}
	for _, c := range []string{ColAgeGroup, ColIncomeOrder, ColTotalSpend, ColAnyAccepted} {
		if !tbl.Has(c) {
			t.Fatalf("derived column %s missing; have %v", c, tbl.Columns())
		}
	}
	groups, err := tbl.Strings(ColAgeGroup)
	if err != nil {
		t.Fatalf("Strings: %v", err)
	}
	if groups[0] != YoungAdults || groups[2] != MiddleAgedAdults || groups[5] != OldAdults {
		t.Fatalf("unexpected age groups: %v", groups)
	}
	buckets, _ := tbl.Strings(ColIncomeOrder)
	if buckets[0] != "[10, 17.5]" || buckets[6] != "(32.5, 40]" || buckets[3] != "(17.5, 25]" {
		t.Fatalf("unexpected income buckets: %v", buckets)
	}
	total, _ := tbl.Floats(ColTotalSpend)
	if total[0] != 240+24+120+48+24+48 {
		t.Fatalf("total spend row 0 = %v", total[0])
	}
	flags, _ := tbl.Floats(ColAnyAccepted)
	var n int
	for _, v := range flags {
		if v == 1 {
			n++
		}
	}
	if n != 6 {
		t.Fatalf("rows with a prior acceptance = %d, want 6", n)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T: %v", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestLoadMissingColumns(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "partial.csv")
	if err := os.WriteFile(p, []byte("Age,Income\n30,100\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(p, Options{})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if !strings.Contains(se.Error(), "marital_status") {
		t.Fatalf("schema error should name missing columns: %v", se)
	}
}

func TestLoadEmptyTable(t *testing.T) {
	p := datasettest.WriteCSV(t, t.TempDir(), nil)
	_, err := Load(p, Options{})
	if err == nil {
		t.Fatalf("expected error for header-only file")
	}
}

func TestLoadTSVByExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "campaign.tsv")
	body := strings.ReplaceAll(datasettest.CSV(datasettest.Rows()), ",", "\t")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load tsv: %v", err)
	}
	if tbl.Rows() != 12 {
		t.Fatalf("rows = %d", tbl.Rows())
	}
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "campaign.xlsx")
	f := excelize.NewFile()
	lines := strings.Split(strings.TrimSpace(datasettest.CSV(datasettest.Rows())), "\n")
	for i, line := range lines {
		cells := strings.Split(line, ",")
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if tbl.Rows() != 12 {
		t.Fatalf("rows = %d", tbl.Rows())
	}
	if got := tbl.IncomeBins().Edges; got[2] != 25 {
		t.Fatalf("edges = %v", got)
	}
}

func TestFilterAndGroupBy(t *testing.T) {
	tbl := loadFixture(t)
	accepted, err := tbl.Filter(ColAnyAccepted, 1)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if accepted.Rows() != 6 {
		t.Fatalf("filtered rows = %d, want 6", accepted.Rows())
	}
	if tbl.Rows() != 12 {
		t.Fatalf("filter mutated the source table")
	}
	groups, err := tbl.GroupBy(ColKids)
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	keys := make([]string, len(groups))
	sizes := 0
	for i, g := range groups {
		keys[i] = g.Key
		sizes += g.Table.Rows()
	}
	if !reflect.DeepEqual(keys, []string{"0", "1", "2"}) {
		t.Fatalf("group keys = %v", keys)
	}
	if sizes != 12 {
		t.Fatalf("groups cover %d rows, want 12", sizes)
	}
	if _, err := tbl.GroupBy("nope"); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestLoadIsDeterministic(t *testing.T) {
	p := datasettest.WriteCSV(t, t.TempDir(), datasettest.Rows())
	a, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(a.Records(), b.Records()) {
		t.Fatalf("two loads of the same file differ")
	}
	if !reflect.DeepEqual(a.IncomeBins(), b.IncomeBins()) {
		t.Fatalf("bins differ between loads")
	}
}

func TestHead(t *testing.T) {
	tbl := loadFixture(t)
	head := tbl.Head(3)
	if len(head) != 4 {
		t.Fatalf("head rows = %d, want header + 3", len(head))
	}
	if head[0][0] != "Age" {
		t.Fatalf("header = %v", head[0])
	}
	if got := len(tbl.Head(100)); got != 13 {
		t.Fatalf("head beyond length = %d rows", got)
	}
}

// withAgeGroups appends a groupAge column holding labels to the fixture CSV.
func withAgeGroups(t *testing.T, labels []string) string {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(datasettest.CSV(datasettest.Rows()), "\n"), "\n")
	lines[0] += "," + ColAgeGroup
	for i := 1; i < len(lines); i++ {
		lines[i] += "," + labels[i-1]
	}
	p := filepath.Join(t.TempDir(), "campaign.csv")
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func fixtureAgeGroups() []string {
	rows := datasettest.Rows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = AgeGroup(float64(r.Age))
	}
	return out
}

func TestLoadKeepsSourceAgeGroups(t *testing.T) {
	labels := fixtureAgeGroups()
	labels[0] = OldAdults // row 0 is 25 years old
	tbl, err := Load(withAgeGroups(t, labels), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	groups, _ := tbl.Strings(ColAgeGroup)
	if !reflect.DeepEqual(groups, labels) {
		t.Fatalf("source age groups replaced: %v", groups)
	}
	if tbl.AgeGroupMismatches() != 1 {
		t.Fatalf("mismatches = %d, want 1", tbl.AgeGroupMismatches())
	}
}

func TestLoadRecomputesUnknownAgeGroups(t *testing.T) {
	labels := fixtureAgeGroups()
	labels[3] = "Adults"
	tbl, err := Load(withAgeGroups(t, labels), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	groups, _ := tbl.Strings(ColAgeGroup)
	if !reflect.DeepEqual(groups, fixtureAgeGroups()) {
		t.Fatalf("unknown labels should be recomputed, got %v", groups)
	}
	if tbl.AgeGroupMismatches() != 1 {
		t.Fatalf("mismatches = %d, want 1", tbl.AgeGroupMismatches())
	}
}

func TestAggregateMatchesRowMeans(t *testing.T) {
	tbl := loadFixture(t)
	keys, values, err := tbl.Aggregate(ColKids, dataframe.Aggregation_MEAN, []string{"MntWines", "NumWebPurchases"})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"0", "1", "2"}) {
		t.Fatalf("keys = %v", keys)
	}
	rows := datasettest.Rows()
	for i, k := range []int{0, 1, 2} {
		sub := datasettest.Where(rows, func(r datasettest.Row) bool { return r.Kids == k })
		wine := datasettest.Mean(sub, func(r datasettest.Row) float64 { return r.Spend[0] })
		web := datasettest.Mean(sub, func(r datasettest.Row) float64 { return r.Channels[0] })
		if math.Abs(values[i][0]-wine) > 1e-9 || math.Abs(values[i][1]-web) > 1e-9 {
			t.Fatalf("kids=%d: got %v, want [%v %v]", k, values[i], wine, web)
		}
	}

	_, sums, err := tbl.Aggregate(ColResponse, dataframe.Aggregation_SUM, []string{ColResponse})
	if err != nil {
		t.Fatalf("Aggregate sum: %v", err)
	}
	if sums[0][0] != 0 || sums[1][0] != 4 {
		t.Fatalf("response sums = %v, want [[0] [4]]", sums)
	}
	if _, _, err := tbl.Aggregate("nope", dataframe.Aggregation_SUM, []string{ColResponse}); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
