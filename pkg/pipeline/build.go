package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/viewstack/pkg/cache"
	"github.com/matzehuels/viewstack/pkg/observability"
	"github.com/matzehuels/viewstack/pkg/scene"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Build converts doc into a view tree and reports the number of nodes in
// the built tree.
func Build(ctx context.Context, doc *scene.Document) (view.View, int, error) {
	name := ""
	if doc != nil {
		name = doc.Name
	}
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, name)
	start := time.Now()

	root, err := scene.Build(doc)
	count := 0
	if err == nil {
		count, err = CountNodes(root)
	}
	hooks.OnBuildComplete(ctx, name, count, time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	return root, count, nil
}

// CountNodes returns the number of views in root's tree.
func CountNodes(root view.View) (int, error) {
	var n int
	err := view.Catch(func() { n = view.Inspect(root).Count() })
	return n, err
}

// SceneHash returns the content hash used in cache keys.
func SceneHash(doc *scene.Document) (string, error) {
	data, err := doc.Canonical()
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
