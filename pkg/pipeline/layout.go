package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/observability"
	"github.com/matzehuels/viewstack/pkg/render"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Layout measures root against the target size.
func Layout(ctx context.Context, root view.View, size geometry.Size) (geometry.Size, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, size)
	start := time.Now()

	measured, err := render.Measure(root, geometry.ProposedFrom(size))
	hooks.OnLayoutComplete(ctx, size, measured, time.Since(start), err)
	return measured, err
}
