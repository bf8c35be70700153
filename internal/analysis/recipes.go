package analysis

import (
	"fmt"

	"github.com/KaramelBytes/edareport/internal/dataset"
)

var channelLabels = map[string]string{
	dataset.ColWebPurchases:     "Frec. compras por web",
	dataset.ColCatalogPurchases: "Frec. compras por catálogo",
	dataset.ColStorePurchases:   "Frec. compras por tienda",
}

var responseLabels = map[string]string{"0": LabelRejected, "1": LabelAccepted}

// householdColumns are averaged per household size; gold is left out.
var householdColumns = []string{dataset.ColWines, dataset.ColFruits, dataset.ColMeat, dataset.ColFish, dataset.ColSweets}

// householdChartOrder is the trace order of the household spend charts.
var householdChartOrder = []string{dataset.ColWines, dataset.ColMeat, dataset.ColFish, dataset.ColSweets, dataset.ColFruits}

var donutColors = []string{"#f56a59", "#398ef5"}

var maritalColors = map[string]string{LabelRejected: "#d32f2f", LabelAccepted: "#3f51b5"}

// Recipes returns the report recipes in display order.
func Recipes() []Recipe {
	return []Recipe{
		{Name: "purchase-frequency-by-age", Section: SectionCustomer, Build: purchaseFrequencyByAge},
		{Name: "spend-by-age-and-education", Section: SectionCustomer, Build: spendByAgeAndEducation},
		{Name: "monthly-spend-by-household", Section: SectionCustomer, Build: monthlySpendByHousehold},
		{Name: "prior-acceptance", Section: SectionCampaign, Build: priorAcceptance},
		{Name: "campaigns-by-income", Section: SectionCampaign, Build: campaignsByIncome},
		{Name: "acceptance-by-income", Section: SectionCampaign, Build: acceptanceByIncome},
		{Name: "response-by-marital-status", Section: SectionCampaign, Build: responseByMaritalStatus},
		{Name: "purchases-by-channel", Section: SectionProduct, Build: purchasesByChannel},
		{Name: "spend-by-category", Section: SectionProduct, Build: spendByCategory},
		{Name: "monthly-spend-by-segment", Section: SectionProduct, Build: monthlySpendBySegment},
	}
}

func purchaseFrequencyByAge(t *dataset.Table) ([]*Artifact, error) {
	means, err := GroupMeans(t, dataset.ColAgeGroup, dataset.ChannelColumns)
	if err != nil {
		return nil, err
	}
	means = means.Reorder(dataset.AgeGroups)
	wide := means.Relabel(channelLabels)
	return []*Artifact{{
		ID:      "purchase-frequency-by-age",
		Section: SectionCustomer,
		Chart: &ChartSpec{
			Kind:       KindGroupedBar,
			Title:      "Frecuencia de compras por grupo de edad",
			XLabel:     dataset.ColAgeGroup,
			YLabel:     "frecuency purchases",
			Legend:     "type",
			Categories: wide.Index,
			Series:     seriesFromColumns(wide, nil),
		},
		Data: []*Frame{means},
		Long: means.Melt("type", "frecuency purchases").Replace(channelLabels),
		Commentary: []string{
			"La gráfica nos muestra 2 puntos importantes",
			"* Los clientes compran con más frecuencias en tiendas físicas en comparación con los otros medios que cuenta la empresa.",
			"* Las personas adultas en promedio son las personas que más frecuente compran si lo comparamos por grupos de edad, esta tendencia se va mostrar en diferentes aspectos.",
		},
	}}, nil
}

func spendByAgeAndEducation(t *dataset.Table) ([]*Artifact, error) {
	groups, err := t.GroupBy(dataset.ColEducation)
	if err != nil {
		return nil, err
	}
	panels := make([]Panel, 0, len(groups))
	for i, g := range groups {
		ages, err := g.Table.Floats(dataset.ColAge)
		if err != nil {
			return nil, err
		}
		spend, err := g.Table.Floats(dataset.ColTotalSpend)
		if err != nil {
			return nil, err
		}
		pts := make([]Point, len(ages))
		for k := range ages {
			pts[k] = Point{X: ages[k], Y: spend[k]}
		}
		panels = append(panels, Panel{
			Title:  fmt.Sprintf("%s=%s", dataset.ColEducation, g.Key),
			Series: []Series{{Name: g.Key, Color: PaletteColor(i), Points: pts}},
		})
	}
	return []*Artifact{{
		ID:      "spend-by-age-and-education",
		Section: SectionCustomer,
		Chart: &ChartSpec{
			Kind:      KindScatter,
			Title:     "Relación entre la edad y el monto gastado por clientes según nivel de educación",
			XLabel:    dataset.ColAge,
			YLabel:    dataset.ColTotalSpend,
			Panels:    panels,
			Opacity:   0.5,
			FacetWrap: 3,
		},
		Commentary: []string{
			"La edad es un factor importante en el monto gastado por la persona, principalmente, con las personas que tienen un nivel de educación alcanzado alto. ",
			"Por otro lado, las personas con educación básica su evolución de gasto es casi nulo con más años alcanzados.",
		},
	}}, nil
}

// MonthlySpendBy averages cols per level of key and converts the averages
// into monthly rates.
func MonthlySpendBy(t *dataset.Table, key string, cols []string) (*Frame, error) {
	means, err := GroupMeans(t, key, cols)
	if err != nil {
		return nil, err
	}
	return means.Scale(1.0 / ObservationWindowMonths), nil
}

func monthlySpendByHousehold(t *dataset.Table) ([]*Artifact, error) {
	var out []*Artifact
	for _, h := range []struct{ key, id string }{
		{dataset.ColKids, "monthly-spend-by-kids"},
		{dataset.ColTeens, "monthly-spend-by-teens"},
	} {
		key := h.key
		monthly, err := MonthlySpendBy(t, key, householdColumns)
		if err != nil {
			return nil, err
		}
		ordered, err := monthly.Select(householdChartOrder...)
		if err != nil {
			return nil, err
		}
		out = append(out, &Artifact{
			ID:      h.id,
			Section: SectionCustomer,
			Chart: &ChartSpec{
				Kind:       KindGroupedBar,
				Title:      "Gasto promedio mensual según tipo de producto",
				XLabel:     key,
				YLabel:     "value",
				Legend:     "variable",
				Categories: ordered.Index,
				Series:     seriesFromColumns(ordered, nil),
			},
			Data: []*Frame{monthly},
		})
	}
	out[len(out)-1].Commentary = []string{
		"2 cosas importantes nos muestra esta gráficas:",
		"Primero, las personas que no tienen hijos menores o hijos adolecentes en promedio gastan más que las personas que tiene hijos menores ",
		"Segundo, El gasto promedio en vinos es mayor que los otros productos que ofrece Ifood.",
	}
	return out, nil
}

func priorAcceptance(t *dataset.Table) ([]*Artifact, error) {
	type split struct {
		flag  int
		title string
	}
	splits := []split{{1, "Aceptaron Anteriormente"}, {0, "No aceptaron Anteriormente"}}
	a := &Artifact{
		ID:      "prior-acceptance",
		Section: SectionCampaign,
		Chart: &ChartSpec{
			Kind:   KindDonut,
			Title:  "% de aceptación de la campaña piloto de las personas que aceptaron o no una campaña anteriormente",
			Legend: dataset.ColResponse,
			Hole:   0.4,
		},
		Commentary: []string{
			"Podemos observar que las personas que aceptaron una campaña anteriormente tienen un mayor porcentaje de aceptación de la campaña piloto. " +
				"Por otro lado, las personas que no aceptaron una campaña anteriormente son más propensos a no aceptar la campaña piloto.",
		},
	}
	for _, s := range splits {
		counts, err := CountBy(t, dataset.ColAnyAccepted, s.flag, dataset.ColResponse)
		if err != nil {
			return nil, err
		}
		counts.Name = s.title
		totals, _ := counts.Column("total")
		colors := make([]string, len(counts.Index))
		for i := range colors {
			colors[i] = donutColors[i%len(donutColors)]
		}
		a.Chart.Panels = append(a.Chart.Panels, Panel{Title: s.title, Labels: counts.Index, Colors: colors, Values: totals})
		a.Data = append(a.Data, counts)
	}
	return []*Artifact{a}, nil
}

func campaignsByIncome(t *dataset.Table) ([]*Artifact, error) {
	sums, err := GroupSums(t, dataset.ColIncomeOrder, dataset.CampaignColumns)
	if err != nil {
		return nil, err
	}
	sums = sums.Reorder(t.IncomeBins().Labels)
	return []*Artifact{{
		ID:      "campaigns-by-income",
		Section: SectionCampaign,
		Prompt:  "¿cuantas campañas en promedio se aceptaron según nivel de ingreso?",
		Data:    []*Frame{sums},
		Tables:  []StyledTable{Gradient("", sums)},
		Commentary: []string{
			"Las personas con ingresos medios altos son las personas que más dispuestos están de aceptar una oferta de una campaña de IFood, " +
				"es decir, son los principales grupo de clientes que cuenta la empresa.",
		},
	}}, nil
}

// AcceptanceRates returns, per income bucket in bin order, the share of
// rows that accepted and rejected the pilot campaign. Outcomes absent from
// the data are reported as zero.
func AcceptanceRates(t *dataset.Table) (*Frame, error) {
	ct, err := Crosstab(t, dataset.ColIncomeOrder, dataset.ColResponse)
	if err != nil {
		return nil, err
	}
	rates := ct.Reorder(t.IncomeBins().Labels).NormalizeRows().Relabel(responseLabels, LabelAccepted, LabelRejected)
	return rates.Select(LabelAccepted, LabelRejected)
}

func acceptanceByIncome(t *dataset.Table) ([]*Artifact, error) {
	rates, err := AcceptanceRates(t)
	if err != nil {
		return nil, err
	}
	return []*Artifact{{
		ID:      "acceptance-by-income",
		Section: SectionCampaign,
		Chart: &ChartSpec{
			Kind:       KindLine,
			Title:      " % Aceptación de la campaña según nivel de ingreso",
			XLabel:     dataset.ColIncomeOrder,
			YLabel:     "value",
			Legend:     "variable",
			Categories: rates.Index,
			Series:     seriesFromColumns(rates, nil),
			Markers:    true,
		},
		Data: []*Frame{rates},
		Commentary: []string{
			"La gráfica muestra que la proporción de personas que aceptan la campaña piloto va en aumento cuando las personas cuentan con un nivel de ingreso mayor.",
		},
	}}, nil
}

func responseByMaritalStatus(t *dataset.Table) ([]*Artifact, error) {
	ct, err := Crosstab(t, dataset.ColMarital, dataset.ColResponse)
	if err != nil {
		return nil, err
	}
	counts, err := ct.Relabel(responseLabels, LabelRejected, LabelAccepted).Select(LabelRejected, LabelAccepted)
	if err != nil {
		return nil, err
	}
	return []*Artifact{{
		ID:      "response-by-marital-status",
		Section: SectionCampaign,
		Chart: &ChartSpec{
			Kind:       KindStackedBarH,
			Title:      "¿Qué situación civil estaban las personas que aceptaron la campaña piloto ?",
			Categories: counts.Index,
			Series:     seriesFromColumns(counts, maritalColors),
		},
		Data: []*Frame{counts},
		Commentary: []string{
			"Apesar de que el rechazo de la campaña piloto es mayor en todas las situaciones civil de las personas, hay que comprender que hay grupos, " +
				"como las personas solteras, que muestran una mayor aceptación de la campaña piloto que está llevando la compañía.",
		},
	}}, nil
}

func purchasesByChannel(t *dataset.Table) ([]*Artifact, error) {
	means, err := ColumnMeans(t, dataset.ChannelColumns, "Frecuencia de compra")
	if err != nil {
		return nil, err
	}
	means = means.SortByColumn(0)
	return []*Artifact{{
		ID:      "purchases-by-channel",
		Section: SectionProduct,
		Chart: &ChartSpec{
			Kind:        KindBar,
			Title:       "¿Cuántas compras en promedio se realizaron según medio de compra?",
			XLabel:      "index",
			YLabel:      "Frecuencia de compra",
			Categories:  means.Index,
			Series:      seriesFromColumns(means, nil),
			ValueFormat: "%.2f",
		},
		Data: []*Frame{means},
		Commentary: []string{
			"Los clientes realizan con mayor frecuencia compras en la tienda física de la empresa, además, " +
				"el segundo medio donde se realizan mayor número de compras en promedio es el sitio web de la empresa.",
		},
	}}, nil
}

func spendByCategory(t *dataset.Table) ([]*Artifact, error) {
	means, err := ColumnMeans(t, dataset.SpendColumns, "Mnt gastado")
	if err != nil {
		return nil, err
	}
	means = means.SortByColumn(0)
	return []*Artifact{{
		ID:      "spend-by-category",
		Section: SectionProduct,
		Chart: &ChartSpec{
			Kind:       KindBar,
			Title:      "¿Que categoría de producto han gastado más los clientes?",
			Categories: means.Index,
			Series:     seriesFromColumns(means, nil),
		},
		Data: []*Frame{means},
		Commentary: []string{
			"Ifood ofrece 5 tipos de productos, los vinos son uno de los principales productos en las que se gasta más en promedio, " +
				"además de las carnes que tambien son más gastado por los clientes.",
			"*Hay que tomar en cuenta los productos Gold, son productos dentro de las categorías que maneja la empresa, pero que son productos más cotizados para ellos.*",
		},
	}}, nil
}

func monthlySpendBySegment(t *dataset.Table) ([]*Artifact, error) {
	a := &Artifact{
		ID:      "monthly-spend-by-segment",
		Section: SectionProduct,
		Prompt:  "¿Qué producto gastan más los clientes según estado civil?",
		Commentary: []string{
			"Tal como se vio en la gráfica anterior, las preferencias por estado civil no varian, es decir, las personas gastan más en vinos independiente de su estado civil. " +
				"Pero si lo analizamos por nivel de educación, se puede ver un patrón similar al cuadro 1, pero que se diferencia con las personas de educación básica " +
				"que tienen una preferencia a comprar los productos gold de la empresa y los productos de pescado. ",
			"*Aunque las personas con educación básica tienen una preferencia por los productos gold, estás son en niveles bajos de gastos.*",
		},
	}
	for _, key := range []string{dataset.ColMarital, dataset.ColEducation} {
		monthly, err := MonthlySpendBy(t, key, dataset.SpendColumns)
		if err != nil {
			return nil, err
		}
		tr := monthly.Transpose()
		tr.Name = key
		a.Data = append(a.Data, tr)
		a.Tables = append(a.Tables, Gradient(key, tr))
	}
	return []*Artifact{a}, nil
}
