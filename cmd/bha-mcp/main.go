package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gregorian-09/buildhotspot/internal/config"
	"github.com/gregorian-09/buildhotspot/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "bha"
	serverVersion = "1.0.0"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	configPath := os.Getenv("BHA_CONFIG")
	loader := config.NewTomlConfigLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		log.Printf("warning: failed to load config: %v, using defaults", err)
		cfg = config.Default()
	}

	deps := mcp.NewDependencies(cfg, nil)
	mcp.RegisterTools(server, deps)

	log.Printf("starting %s MCP server v%s", serverName, serverVersion)
	log.Println("registered tools: analyze_traces, anonymize_trace")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
