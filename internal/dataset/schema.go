package dataset

import "github.com/go-gota/gota/series"

// Column names of the campaign dataset.
const (
	ColAge         = "Age"
	ColAgeGroup    = "groupAge"
	ColEducation   = "Education"
	ColMarital     = "marital_status"
	ColIncome      = "Income"
	ColIncomeOrder = "IncomeOrder"
	ColKids        = "Kidhome"
	ColTeens       = "Teenhome"
	ColTotalSpend  = "MntProducts"
	ColAnyAccepted = "Accmost1"
	ColResponse    = "Response"
)

// Spend columns, one per product category.
const (
	ColWines  = "MntWines"
	ColFruits = "MntFruits"
	ColMeat   = "MntMeatProducts"
	ColFish   = "MntFishProducts"
	ColSweets = "MntSweetProducts"
	ColGold   = "MntGoldProds"
)

// Purchase channel columns.
const (
	ColWebPurchases     = "NumWebPurchases"
	ColCatalogPurchases = "NumCatalogPurchases"
	ColStorePurchases   = "NumStorePurchases"
)

// Age group labels in presentation order.
const (
	YoungAdults      = "Young Adults"
	MiddleAgedAdults = "Middle-Aged Adults"
	OldAdults        = "Old Adults"
)

// IncomeBuckets is the number of equal-width income bins.
const IncomeBuckets = 4

var (
	// SpendColumns lists the six product spend columns.
	SpendColumns = []string{ColWines, ColFruits, ColMeat, ColFish, ColSweets, ColGold}
	// ChannelColumns lists the purchase channel counters.
	ChannelColumns = []string{ColWebPurchases, ColCatalogPurchases, ColStorePurchases}
	// CampaignColumns lists the five prior campaign acceptance flags.
	CampaignColumns = []string{"AcceptedCmp1", "AcceptedCmp2", "AcceptedCmp3", "AcceptedCmp4", "AcceptedCmp5"}
	// AgeGroups is the fixed axis order of the derived age groups.
	AgeGroups = []string{YoungAdults, MiddleAgedAdults, OldAdults}
)

// RequiredColumns returns the columns a source file must carry.
// Derived columns (age group, income bucket, total spend, any-accepted flag)
// are not required.
func RequiredColumns() []string {
	cols := []string{ColAge, ColEducation, ColMarital, ColIncome, ColKids, ColTeens, ColResponse}
	cols = append(cols, SpendColumns...)
	cols = append(cols, ChannelColumns...)
	cols = append(cols, CampaignColumns...)
	return cols
}

// AgeGroup maps an age to its group label.
func AgeGroup(age float64) string {
	switch {
	case age <= 35:
		return YoungAdults
	case age <= 55:
		return MiddleAgedAdults
	default:
		return OldAdults
	}
}

func columnTypes() map[string]series.Type {
	m := map[string]series.Type{
		ColAge:         series.Int,
		ColAgeGroup:    series.String,
		ColEducation:   series.String,
		ColMarital:     series.String,
		ColIncome:      series.Float,
		ColIncomeOrder: series.String,
		ColKids:        series.Int,
		ColTeens:       series.Int,
		ColTotalSpend:  series.Float,
		ColAnyAccepted: series.Int,
		ColResponse:    series.Int,
	}
	for _, c := range SpendColumns {
		m[c] = series.Float
	}
	for _, c := range ChannelColumns {
		m[c] = series.Float
	}
	for _, c := range CampaignColumns {
		m[c] = series.Int
	}
	return m
}
