// Package report assembles analysis artifacts into the finished EDA page.
package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/KaramelBytes/edareport/internal/render"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Title is the page heading.
const Title = "Reporte de análisis exploratorio de datos"

// Intro holds the two paragraphs shown under the hero image.
var Intro = []string{
	"iFood es la aplicación de entrega de alimentos líder en Brasil, presente en más de mil ciudades. " +
		"Actualmente tienen alrededor de cientos de miles de clientes registrados, además de que atienden a casi un millón " +
		"consumidores al año. Por lo que, siempre están buscando nuevas estrategias para invertir y mejorar " +
		"el desempeño de las actividades.",
	"Se cuenta con una muestra de datos de una campaña piloto y en este informe se muestra los principales datos " +
		"encontradas y la relevancia que pueden tener en una campaña.",
}

const (
	rawToggleLabel = "Mostrar datos crudos"
	rawHeading     = "Datos crudos"
)

// Options controls document assembly.
type Options struct {
	ImagePath string
	// Raw includes the raw data preview.
	Raw         bool
	PreviewRows int
	Chart       render.Options
}

// Document is the report in presentation order.
type Document struct {
	RunID       string
	GeneratedAt time.Time
	Source      string
	Title       string
	Intro       []string
	Image       *Image
	Raw         *RawPreview
	Sections    []Section
	Warnings    []string
}

// Image is the hero image, embedded as is.
type Image struct {
	Path string
	MIME string
	Data []byte
}

// DataURI returns the image as a data: URL.
func (i *Image) DataURI() template.URL {
	return template.URL("data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data))
}

// RawPreview is the first rows of the dataset plus its column profile.
type RawPreview struct {
	Header  []string
	Rows    [][]string
	Profile *analysis.Profile
}

// Section is a header followed by its artifacts.
type Section struct {
	Heading string
	Blocks  []Block
}

// Block is one artifact with its drawn chart, if any.
type Block struct {
	Artifact *analysis.Artifact
	SVG      []byte
}

// LoadImage reads the hero image and sniffs its content type.
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &Image{Path: path, MIME: http.DetectContentType(data), Data: data}, nil
}

// Build computes every artifact from t, draws the charts and lays the
// document out. Any recipe or chart error aborts the build.
func Build(ctx context.Context, t *dataset.Table, opt Options) (*Document, error) {
	arts, err := analysis.BuildAll(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("build artifacts: %w", err)
	}
	svgs := make([][]byte, len(arts))
	g, _ := errgroup.WithContext(ctx)
	for i, a := range arts {
		if a.Chart == nil {
			continue
		}
		i, a := i, a
		g.Go(func() error {
			out, err := render.SVG(a.Chart, opt.Chart)
			if err != nil {
				return fmt.Errorf("draw %s: %w", a.ID, err)
			}
			svgs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := &Document{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Source:      t.Path,
		Title:       Title,
		Intro:       Intro,
	}
	if opt.ImagePath != "" {
		img, err := LoadImage(opt.ImagePath)
		if err != nil {
			doc.Warnings = append(doc.Warnings, err.Error())
		} else {
			doc.Image = img
		}
	}
	if opt.Raw {
		raw, err := buildRaw(t, opt.PreviewRows)
		if err != nil {
			return nil, err
		}
		doc.Raw = raw
	}
	for _, heading := range analysis.Sections {
		sec := Section{Heading: heading}
		for i, a := range arts {
			if a.Section == heading {
				sec.Blocks = append(sec.Blocks, Block{Artifact: a, SVG: svgs[i]})
			}
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

func buildRaw(t *dataset.Table, n int) (*RawPreview, error) {
	if n <= 0 {
		n = 5
	}
	prof, err := analysis.ProfileTable(t, n)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	head := t.Head(n)
	return &RawPreview{Header: head[0], Rows: head[1:], Profile: prof}, nil
}

// Artifacts returns every artifact in presentation order.
func (d *Document) Artifacts() []*analysis.Artifact {
	var out []*analysis.Artifact
	for _, s := range d.Sections {
		for _, b := range s.Blocks {
			out = append(out, b.Artifact)
		}
	}
	return out
}

// Chart returns the drawn SVG of the artifact with the given id.
func (d *Document) Chart(id string) ([]byte, bool) {
	for _, s := range d.Sections {
		for _, b := range s.Blocks {
			if b.Artifact.ID == id && b.SVG != nil {
				return b.SVG, true
			}
		}
	}
	return nil, false
}
