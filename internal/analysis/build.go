package analysis

import (
	"context"
	"fmt"

	"github.com/KaramelBytes/edareport/internal/dataset"
	"golang.org/x/sync/errgroup"
)

// BuildAll runs every recipe concurrently and returns the artifacts in
// display order. The first recipe error cancels the rest.
func BuildAll(ctx context.Context, t *dataset.Table) ([]*Artifact, error) {
	return Build(ctx, t, Recipes())
}

// Build runs the given recipes concurrently; output order follows recipes.
func Build(ctx context.Context, t *dataset.Table, recipes []Recipe) ([]*Artifact, error) {
	results := make([][]*Artifact, len(recipes))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range recipes {
		i, r := i, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			arts, err := r.Build(t)
			if err != nil {
				return fmt.Errorf("recipe %s: %w", r.Name, err)
			}
			results[i] = arts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []*Artifact
	for _, arts := range results {
		out = append(out, arts...)
	}
	return out, nil
}

// Find returns the artifact with the given id.
func Find(arts []*Artifact, id string) (*Artifact, bool) {
	for _, a := range arts {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}
