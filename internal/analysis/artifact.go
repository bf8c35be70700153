package analysis

import "github.com/KaramelBytes/edareport/internal/dataset"

// Report sections, in display order.
const (
	SectionCustomer = "Características del cliente"
	SectionCampaign = "Efectividad de la campaña piloto"
	SectionProduct  = "Producto y medio de compra"
)

// Sections lists the section headings in display order.
var Sections = []string{SectionCustomer, SectionCampaign, SectionProduct}

// Outcome labels for the pilot campaign response.
const (
	LabelRejected = "Rechazan"
	LabelAccepted = "Aceptan"
)

// Artifact is one finished block of the report: reshaped data, a chart or
// styled tables, and the commentary shown beneath it.
type Artifact struct {
	ID      string `json:"id" yaml:"id"`
	Section string `json:"section" yaml:"section"`
	// Prompt is a plain-text question shown above tables.
	Prompt     string        `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Chart      *ChartSpec    `json:"chart,omitempty" yaml:"chart,omitempty"`
	Data       []*Frame      `json:"data,omitempty" yaml:"data,omitempty"`
	Long       *LongFrame    `json:"long,omitempty" yaml:"long,omitempty"`
	Tables     []StyledTable `json:"tables,omitempty" yaml:"tables,omitempty"`
	Commentary []string      `json:"commentary,omitempty" yaml:"commentary,omitempty"`
}

// Title returns the chart title, or the prompt for table artifacts.
func (a *Artifact) Title() string {
	if a.Chart != nil {
		return a.Chart.Title
	}
	return a.Prompt
}

// Recipe turns the dataset into one or more artifacts. Recipes are
// stateless and never mutate the table.
type Recipe struct {
	Name    string
	Section string
	Build   func(t *dataset.Table) ([]*Artifact, error)
}
