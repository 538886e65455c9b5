package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/server"
	"github.com/mj1618/a11y-check/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing a11y-check tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the rule engine
as tools (list_rules, show_rule, scan, eval). AI agents can call them
directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  a11y-check serve
  a11y-check serve --transport streamable-http --port 8080
  a11y-check serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addRuleFlags(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config)")
	serveCmd.Flags().Int("cache-ttl", -1, "Element tree cache TTL in milliseconds (0 to disable, default from config)")
}

// serveConfig merges the serve flags over the config file.
func serveConfig(cmd *cobra.Command) server.Config {
	sc := server.Config{
		Transport: cfg.Serve.Transport,
		Port:      cfg.Serve.Port,
		CacheTTL:  cfg.Serve.CacheTTL,
		Workers:   cfg.Workers,
		MaxDepth:  cfg.MaxDepth,
		Version:   version.Version,
	}
	if transport, _ := cmd.Flags().GetString("transport"); transport != "" {
		sc.Transport = transport
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		sc.Port = port
	}
	if ttl, _ := cmd.Flags().GetInt("cache-ttl"); ttl >= 0 {
		sc.CacheTTL = time.Duration(ttl) * time.Millisecond
	}
	return sc
}

func runServe(cmd *cobra.Command, args []string) error {
	reg, err := selectRegistry(cmd)
	if err != nil {
		return err
	}
	sc := serveConfig(cmd)
	switch sc.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", sc.Transport)
	}
	logger.Info("starting MCP server", "transport", sc.Transport, "rules", reg.Len())
	return server.New(sc, reg, logger).Serve()
}
