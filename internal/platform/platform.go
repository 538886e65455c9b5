package platform

import (
	"context"

	"github.com/mj1618/a11y-check/internal/a11y"
)

// Source produces element trees to evaluate.
type Source interface {
	// Roots returns the root elements selected by opts.
	Roots(ctx context.Context, opts ReadOptions) ([]a11y.Element, error)

	// Describe names the source for logs and reports.
	Describe() string
}
