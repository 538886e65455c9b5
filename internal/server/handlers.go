package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/platform"
	"github.com/mj1618/a11y-check/internal/rules"
	"github.com/mj1618/a11y-check/internal/scan"
)

func yamlText(v interface{}) *mcp.CallToolResult {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(b))
}

func (s *Server) handleListRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return yamlText(output.RuleViews(s.registry)), nil
}

func (s *Server) handleShowRule(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "id", "")
	r, ok := s.registry.Lookup(rules.ID(id))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %q", rules.ErrUnknownRule, id)), nil
	}
	return yamlText(output.NewRuleView(r)), nil
}

func (s *Server) handleScan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	format, err := output.ParseFormat(stringParam(params, "format", string(output.FormatYAML)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reg, err := s.selectRules(stringParam(params, "rules", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	src, err := s.source(stringParam(params, "fixtures", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if boolParam(params, "refresh", false) {
		s.cache.Invalidate(src.Describe())
	}

	roots, err := s.cache.Roots(ctx, src, platform.ReadOptions{
		Window:    stringParam(params, "window", ""),
		ElementID: intParam(params, "scope-id", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	scanner := &scan.Scanner{
		Registry: reg,
		MaxDepth: s.cfg.MaxDepth,
		Workers:  s.cfg.Workers,
		Logger:   s.logger,
		Source:   src.Describe(),
	}
	report, err := scanner.Scan(ctx, roots...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if boolParam(params, "findings", false) {
		report.Results = report.Filter(rules.Fail, rules.Note, rules.RuleExecutionError)
	}

	var buf bytes.Buffer
	switch format {
	case output.FormatSARIF:
		err = output.WriteSARIF(&buf, report, reg, s.cfg.Version)
	case output.FormatSummary:
		err = output.WriteSummary(&buf, report, false)
	default:
		err = output.Fprint(&buf, format, report)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := intParam(params, "id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id must be a positive element ID"), nil
	}
	reg, err := s.selectRules(stringParam(params, "rules", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	src, err := s.source(stringParam(params, "fixtures", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	roots, err := s.cache.Roots(ctx, src, platform.ReadOptions{ElementID: id})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := scan.Explain(reg, roots[0])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlText(result), nil
}

func (s *Server) source(fixtures string) (platform.Source, error) {
	targets := splitList(fixtures)
	if len(targets) == 0 {
		return nil, errors.New("fixtures parameter is required")
	}
	return s.resolve(targets...)
}

func (s *Server) selectRules(list string) (*rules.Registry, error) {
	ids := splitList(list)
	if len(ids) == 0 {
		return s.registry, nil
	}
	sel := make([]rules.ID, len(ids))
	for i, id := range ids {
		sel[i] = rules.ID(id)
	}
	return s.registry.Select(sel...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Parameter extraction helpers for tool arguments

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
