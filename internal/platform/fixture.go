package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/mj1618/a11y-check/internal/a11y"
	"github.com/mj1618/a11y-check/internal/model"
)

// FixtureSource reads element trees from fixture files.
type FixtureSource struct {
	Paths []string
	// Load reads one file; model.LoadTree when nil.
	Load func(path string) (*model.Tree, error)
}

func NewFixtureSource(paths ...string) *FixtureSource {
	return &FixtureSource{Paths: paths}
}

func (s *FixtureSource) Describe() string {
	return "fixtures: " + strings.Join(s.Paths, ", ")
}

// Trees loads every fixture in order.
func (s *FixtureSource) Trees(ctx context.Context) ([]*model.Tree, error) {
	load := s.Load
	if load == nil {
		load = model.LoadTree
	}
	trees := make([]*model.Tree, 0, len(s.Paths))
	for _, p := range s.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tree, err := load(p)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

func (s *FixtureSource) Roots(ctx context.Context, opts ReadOptions) ([]a11y.Element, error) {
	trees, err := s.Trees(ctx)
	if err != nil {
		return nil, err
	}
	var roots []a11y.Element
	for _, tree := range trees {
		if opts.ElementID != 0 {
			if n, ok := tree.FindByID(opts.ElementID); ok {
				roots = append(roots, n)
			}
			continue
		}
		for _, n := range tree.Roots {
			if opts.Window != "" && !strings.Contains(strings.ToLower(n.Name()), strings.ToLower(opts.Window)) {
				continue
			}
			roots = append(roots, n)
		}
	}
	if opts.ElementID != 0 && len(roots) == 0 {
		return nil, fmt.Errorf("element %d not found", opts.ElementID)
	}
	return roots, nil
}
