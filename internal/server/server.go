// Package server exposes the rule engine as Model Context Protocol tools.
package server

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/a11y-check/internal/logging"
	"github.com/mj1618/a11y-check/internal/platform"
	"github.com/mj1618/a11y-check/internal/rules"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Workers   int
	MaxDepth  int
	Version   string
}

// Server wraps the MCP server with the rule registry and tree cache.
type Server struct {
	cfg      Config
	registry *rules.Registry
	cache    *TreeCache
	logger   hclog.Logger
	resolve  func(targets ...string) (platform.Source, error)
	mcp      *mcpserver.MCPServer
}

// New creates an MCP server exposing every a11y-check tool.
func New(cfg Config, reg *rules.Registry, logger hclog.Logger) *Server {
	if reg == nil {
		reg = rules.Default()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		cfg:      cfg,
		registry: reg,
		cache:    NewTreeCache(cfg.CacheTTL),
		logger:   logging.OrNull(logger).Named("mcp"),
		resolve:  platform.ResolveSource,
	}
	s.mcp = mcpserver.NewMCPServer(
		"a11y-check",
		version,
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	s.logger.Info("serving", "transport", s.cfg.Transport, "rules", s.registry.Len())
	switch s.cfg.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// list_rules
	s.mcp.AddTool(
		mcp.NewTool("list_rules",
			mcp.WithDescription("List the accessibility rules with their standards, descriptions and conditions"),
		),
		s.handleListRules,
	)

	// show_rule
	s.mcp.AddTool(
		mcp.NewTool("show_rule",
			mcp.WithDescription("Show one accessibility rule"),
			mcp.WithString("id", mcp.Description("Rule ID (e.g. 'NameNotEmpty')"), mcp.Required()),
		),
		s.handleShowRule,
	)

	// scan
	s.mcp.AddTool(
		mcp.NewTool("scan",
			mcp.WithDescription("Evaluate every rule against every element of one or more element trees. Returns one verdict per rule and element: Pass, Fail, Note, Open or RuleExecutionError."),
			mcp.WithString("fixtures", mcp.Description("Comma-separated fixture files (YAML or JSON), or 'live'"), mcp.Required()),
			mcp.WithString("window", mcp.Description("Only scan roots whose name contains this")),
			mcp.WithNumber("scope-id", mcp.Description("Scan only the subtree of this element ID")),
			mcp.WithString("rules", mcp.Description("Comma-separated rule IDs (default: all)")),
			mcp.WithString("format", mcp.Description("Result format: yaml, json, sarif, summary (default: yaml)")),
			mcp.WithBoolean("findings", mcp.Description("Only return Fail, Note and RuleExecutionError verdicts")),
			mcp.WithBoolean("refresh", mcp.Description("Bypass the tree cache")),
		),
		s.handleScan,
	)

	// eval
	s.mcp.AddTool(
		mcp.NewTool("eval",
			mcp.WithDescription("Evaluate the rules against a single element and explain each verdict"),
			mcp.WithString("fixtures", mcp.Description("Comma-separated fixture files (YAML or JSON), or 'live'"), mcp.Required()),
			mcp.WithNumber("id", mcp.Description("Element ID"), mcp.Required()),
			mcp.WithString("rules", mcp.Description("Comma-separated rule IDs (default: all)")),
		),
		s.handleEval,
	)
}
