// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes support tools to LLM agents over stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/skyway/concierge/internal/mcp"
	"github.com/skyway/concierge/internal/watcher"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the concierge as an MCP (Model Context Protocol) server,
exposing support chat, policy search, and customer lookup tools
over stdio.

With CONCIERGE_WATCH_POLICIES=true the policy directory is watched
and the index rebuilt when documents change.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  concierge mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "concierge": {
  #       "command": "concierge",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := initBackend(ctx)
	if err != nil {
		return err
	}

	// Optionally watch the policy directory for changes
	if b.cfg.WatchPolicies {
		w, err := watcher.New(b.cfg.PolicyDir, b.retriever, watcher.DefaultDebounce)
		if err != nil {
			return fmt.Errorf("initializing policy watcher: %w", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Warning: policy watcher stopped: %v", err)
			}
		}()
	}

	server := mcpserver.NewMCPServer(
		"SkyWay Concierge",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, b.engine, b.retriever, b.directory)

	if !quiet {
		log.Println("Concierge MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
