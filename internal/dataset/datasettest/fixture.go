// Package datasettest provides a small campaign dataset for tests.
package datasettest

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Row is one respondent of the fixture dataset.
type Row struct {
	Age       int
	Education string
	Marital   string
	Income    float64
	Kids      int
	Teens     int
	// Wines, Fruits, Meat, Fish, Sweets, Gold
	Spend [6]float64
	// Web, Catalog, Store
	Channels [3]float64
	Cmp      [5]int
	Response int
}

// Header is the CSV header written by CSV.
var Header = []string{
	"Age", "Education", "marital_status", "Income", "Kidhome", "Teenhome",
	"MntWines", "MntFruits", "MntMeatProducts", "MntFishProducts", "MntSweetProducts", "MntGoldProds",
	"NumWebPurchases", "NumCatalogPurchases", "NumStorePurchases",
	"AcceptedCmp1", "AcceptedCmp2", "AcceptedCmp3", "AcceptedCmp4", "AcceptedCmp5",
	"Response",
}

// Rows returns twelve respondents with incomes spanning [10, 40].
//
// Income buckets: [10, 17.5] rows 0,1,7; (17.5, 25] rows 2,3,10 (no
// acceptances); (25, 32.5] rows 4,9 (only acceptances); (32.5, 40] rows
// 5,6,8,11.
func Rows() []Row {
	return []Row{
		{25, "Graduation", "Single", 10, 1, 0, [6]float64{240, 24, 120, 48, 24, 48}, [3]float64{2, 1, 3}, [5]int{0, 0, 0, 0, 0}, 0},
		{30, "Graduation", "Married", 15, 1, 0, [6]float64{480, 48, 240, 24, 24, 24}, [3]float64{4, 2, 5}, [5]int{1, 0, 0, 0, 0}, 1},
		{42, "PhD", "Married", 20, 0, 1, [6]float64{720, 24, 480, 48, 48, 72}, [3]float64{5, 3, 8}, [5]int{0, 0, 0, 0, 0}, 0},
		{48, "Master", "Together", 25, 0, 1, [6]float64{960, 72, 480, 96, 48, 96}, [3]float64{6, 4, 9}, [5]int{0, 0, 1, 0, 0}, 0},
		{50, "Graduation", "Single", 30, 0, 0, [6]float64{1200, 96, 720, 120, 96, 120}, [3]float64{7, 5, 10}, [5]int{0, 0, 0, 1, 1}, 1},
		{60, "PhD", "Married", 35, 0, 1, [6]float64{1440, 120, 960, 144, 120, 144}, [3]float64{5, 6, 11}, [5]int{0, 1, 0, 0, 0}, 0},
		{65, "Basic", "Divorced", 40, 1, 1, [6]float64{240, 48, 96, 72, 24, 96}, [3]float64{3, 1, 6}, [5]int{0, 0, 0, 0, 0}, 0},
		{33, "Master", "Together", 12, 2, 0, [6]float64{96, 24, 48, 24, 24, 24}, [3]float64{2, 0, 3}, [5]int{0, 0, 0, 0, 0}, 0},
		{57, "Graduation", "Widow", 38, 0, 0, [6]float64{1680, 144, 960, 168, 144, 168}, [3]float64{8, 7, 12}, [5]int{1, 1, 0, 0, 1}, 1},
		{45, "PhD", "Single", 28, 1, 0, [6]float64{480, 24, 240, 48, 24, 48}, [3]float64{4, 2, 6}, [5]int{0, 0, 0, 0, 0}, 1},
		{36, "Graduation", "Married", 22, 1, 1, [6]float64{360, 24, 120, 24, 24, 24}, [3]float64{3, 1, 4}, [5]int{0, 0, 0, 0, 0}, 0},
		{70, "Master", "Widow", 33, 0, 1, [6]float64{720, 48, 360, 72, 48, 72}, [3]float64{4, 3, 7}, [5]int{0, 0, 1, 0, 0}, 0},
	}
}

// CSV renders rows as comma-separated text with Header.
func CSV(rows []Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	b.WriteString("\n")
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Age), r.Education, r.Marital, ftoa(r.Income),
			strconv.Itoa(r.Kids), strconv.Itoa(r.Teens),
		}
		for _, v := range r.Spend {
			rec = append(rec, ftoa(v))
		}
		for _, v := range r.Channels {
			rec = append(rec, ftoa(v))
		}
		for _, v := range r.Cmp {
			rec = append(rec, strconv.Itoa(v))
		}
		rec = append(rec, strconv.Itoa(r.Response))
		b.WriteString(strings.Join(rec, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// WriteCSV writes rows to dir/campaign.csv and returns the path.
func WriteCSV(tb testing.TB, dir string, rows []Row) string {
	tb.Helper()
	p := filepath.Join(dir, "campaign.csv")
	if err := os.WriteFile(p, []byte(CSV(rows)), 0o644); err != nil {
		tb.Fatalf("write csv: %v", err)
	}
	return p
}

// Mean returns the arithmetic mean of pick over rows.
func Mean(rows []Row, pick func(Row) float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += pick(r)
	}
	return sum / float64(len(rows))
}

// Where returns the rows matching keep.
func Where(rows []Row, keep func(Row) bool) []Row {
	var out []Row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
