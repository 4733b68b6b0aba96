package assets

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ModelResolver turns an asset reference into a model renderable.
type ModelResolver interface {
	ResolveModel(ctx context.Context, ref string) (*Renderable, error)
}

// ViewResolver snapshots a UI control into a view renderable.
type ViewResolver interface {
	ResolveView(ctx context.Context, spec ViewSpec) (*Renderable, error)
}

// Loader resolves both kinds of renderable. *Library implements it.
type Loader interface {
	ModelResolver
	ViewResolver
}

// Pair is the result of a placement load: the furniture model and its control.
type Pair struct {
	Model *Renderable
	View  *Renderable
}

// LoadPair resolves the model at ref and the view for spec concurrently and returns once both
// are ready. The first failure cancels the context passed to the other resolution and is the
// error returned. Callers bound the whole join with ctx (timeout, supersession).
func LoadPair(ctx context.Context, l Loader, ref string, spec ViewSpec) (Pair, error) {
	g, gctx := errgroup.WithContext(ctx)
	var p Pair
	g.Go(func() error {
		r, err := l.ResolveModel(gctx, ref)
		if err != nil {
			return fmt.Errorf("model %s: %w", ref, err)
		}
		p.Model = r
		return nil
	})
	g.Go(func() error {
		r, err := l.ResolveView(gctx, spec)
		if err != nil {
			return fmt.Errorf("view %q: %w", spec.Label, err)
		}
		p.View = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return Pair{}, err
	}
	return p, nil
}
