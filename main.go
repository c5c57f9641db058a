// Wikipedia As-Of MCP Server - A Model Context Protocol server for reading
// Wikipedia articles as they existed at a specific moment in time.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patqa/wikipedia-asof-mcp-server/internal/wikipedia"
	"github.com/patqa/wikipedia-asof-mcp-server/tools"
	"github.com/patqa/wikipedia-asof-mcp-server/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServerName    = "wikipedia-asof-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration from environment
	config, err := wikipedia.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing
	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	// Create Wikipedia client
	client := wikipedia.NewClient(config, wikipedia.WithLogger(logger))

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Wikipedia As-Of MCP Server reads Wikipedia articles as they existed at a given moment in time.

Available tools:
- wikipedia_read_asof: Read an article as of a date or timestamp (or a URL pinned to an oldid)
- wikipedia_resolve_revision: Resolve which revision was current at a moment, with a permanent oldid URL

Configure via environment variables:
- WIKIPEDIA_API_URL: Action API endpoint (default https://en.wikipedia.org/w/api.php)
- WIKIPEDIA_INDEX_URL: Permalink base (default https://en.wikipedia.org/w/index.php)
- WIKIPEDIA_USER_AGENT: User-Agent header; include a contact address per Wikimedia policy
- WIKIPEDIA_TIMEOUT: Per-request timeout (default 30s)
- WIKIPEDIA_MAX_EXTRACT_CHARS: Plain-text truncation budget (default 25000)
- WIKIPEDIA_REQUIRE_TIMESTAMP: Require t_query instead of defaulting to today`,
	})

	// Register all tools
	registry := tools.NewHandlerRegistry(client, logger)
	registry.RegisterAll(server)

	// Optionally expose Prometheus metrics over HTTP
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("Serving metrics", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Run server on stdio transport
	logger.Info("Starting Wikipedia As-Of MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"api_url", config.APIURL,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
