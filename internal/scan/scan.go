// Package scan walks element trees and evaluates a rule registry against
// every element.
package scan

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/mj1618/a11y-check/internal/a11y"
	"github.com/mj1618/a11y-check/internal/condition"
	"github.com/mj1618/a11y-check/internal/logging"
	"github.com/mj1618/a11y-check/internal/model"
	"github.com/mj1618/a11y-check/internal/rules"
)

// DefaultMaxElements bounds the number of elements one scan visits.
const DefaultMaxElements = 100000

// Scanner evaluates a registry against element trees.
type Scanner struct {
	Registry    *rules.Registry
	MaxDepth    int // Deepest level walked below a root (0 = condition.DefaultMaxDepth)
	MaxElements int // Walk budget (0 = DefaultMaxElements)
	Workers     int // Elements evaluated concurrently (<= 1 = sequential)
	Logger      hclog.Logger
	Source      string
}

// Target is an element scheduled for evaluation.
type Target struct {
	Index   int
	Element a11y.Element
	ID      string
	Path    string
	Name    string
	Depth   int
}

// Scan evaluates every element reachable from roots. Results are ordered by
// element pre-order index, then by rule registration order. On context
// cancellation the partial report is returned together with the error.
func (s *Scanner) Scan(ctx context.Context, roots ...a11y.Element) (*Report, error) {
	if s.Registry == nil {
		return nil, fmt.Errorf("scan: no rule registry")
	}
	log := logging.OrNull(s.Logger)
	report := &Report{ScanID: uuid.NewString(), Source: s.Source, Started: time.Now()}
	log.Debug("scan started", "scan_id", report.ScanID, "roots", len(roots), "rules", s.Registry.Len())

	targets, warnings, walkErr := s.Walk(ctx, roots...)
	report.Warnings = warnings
	for _, w := range warnings {
		log.Warn("walk", "detail", w)
	}

	results, evalErr := s.evaluate(ctx, targets)
	for i, res := range results {
		if res == nil {
			continue
		}
		report.Summary.Elements++
		t := targets[i]
		for _, r := range res {
			entry := Entry{
				Rule:    r.RuleID,
				Code:    r.Code,
				Element: t.ID,
				Index:   t.Index,
				Path:    t.Path,
				Name:    t.Name,
			}
			if r.Fault != nil {
				entry.Fault = r.Fault.Error()
				log.Debug("rule execution error", "rule", r.RuleID, "element", t.ID, "error", r.Fault)
			}
			report.Summary.add(r.Code)
			report.Results = append(report.Results, entry)
		}
	}
	report.Finished = time.Now()

	err := walkErr
	if err == nil {
		err = evalErr
	}
	if err != nil {
		log.Warn("scan interrupted", "scan_id", report.ScanID, "error", err)
		return report, err
	}
	log.Info("scan finished", "scan_id", report.ScanID, "elements", report.Summary.Elements,
		"fail", report.Summary.Fail, "note", report.Summary.Note, "errors", report.Summary.Errors)
	return report, nil
}

// evaluate runs the registry on each target. A nil entry means the target
// was never scheduled.
func (s *Scanner) evaluate(ctx context.Context, targets []Target) ([][]rules.Result, error) {
	results := make([][]rules.Result, len(targets))
	var g errgroup.Group
	g.SetLimit(max(1, s.Workers))
	for i := range targets {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := s.Registry.EvaluateAll(targets[i].Element)
			if err != nil {
				return fmt.Errorf("element %s: %w", targets[i].ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

type frame struct {
	el    a11y.Element
	depth int
	path  string
}

// Walk lists the elements reachable from roots in pre-order. Elements seen
// before are skipped, so cyclic trees terminate. A provider fault while
// listing children is reported as a warning and the subtree is skipped; the
// element itself is still returned.
func (s *Scanner) Walk(ctx context.Context, roots ...a11y.Element) ([]Target, []string, error) {
	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = condition.DefaultMaxDepth
	}
	budget := s.MaxElements
	if budget <= 0 {
		budget = DefaultMaxElements
	}

	var (
		targets  []Target
		warnings []string
		seen     = make(map[any]struct{})
		stack    []frame
	)
	for _, r := range slices.Backward(roots) {
		stack = append(stack, frame{el: r})
	}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return targets, warnings, err
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if a11y.IsNil(f.el) {
			continue
		}
		if key := a11y.Identity(f.el); key != nil {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		if len(targets) >= budget {
			warnings = append(warnings, fmt.Sprintf("element budget of %d reached; remaining elements skipped", budget))
			break
		}

		t := describe(f.el, len(targets), f.depth, f.path)
		targets = append(targets, t)

		if f.depth >= maxDepth {
			continue
		}
		children, err := f.el.Children()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("element %s (%s): read children: %v", t.ID, t.Path, err))
			continue
		}
		for _, c := range slices.Backward(children) {
			stack = append(stack, frame{el: c, depth: f.depth + 1, path: t.Path})
		}
	}
	return targets, warnings, nil
}

func describe(e a11y.Element, index, depth int, parentPath string) Target {
	t := Target{Index: index, Element: e, Depth: depth, ID: "#" + strconv.Itoa(index)}
	if id, ok := e.(a11y.Identifiable); ok {
		t.ID = id.RuntimeID()
	}
	segment := "?"
	if ct, err := e.ControlType(); err == nil {
		segment = model.RoleCode(ct)
	}
	t.Path = segment
	if parentPath != "" {
		t.Path = parentPath + model.PathSeparator + segment
	}
	if v, ok, err := e.Property(a11y.PropertyName); err == nil && ok {
		t.Name, _ = v.(string)
	}
	return t
}

// Locate describes a single element with its path from the root, following
// Parent links. The climb stops at a revisit, a provider fault or
// condition.DefaultMaxDepth levels.
func Locate(e a11y.Element) Target {
	var chain []a11y.Element
	seen := map[any]struct{}{}
	for cur := e; !a11y.IsNil(cur) && len(chain) <= condition.DefaultMaxDepth; {
		if key := a11y.Identity(cur); key != nil {
			if _, ok := seen[key]; ok {
				break
			}
			seen[key] = struct{}{}
		}
		chain = append(chain, cur)
		parent, err := cur.Parent()
		if err != nil {
			break
		}
		cur = parent
	}
	path := ""
	for i := len(chain) - 1; i > 0; i-- {
		path = describe(chain[i], 0, 0, path).Path
	}
	return describe(e, 0, len(chain)-1, path)
}
