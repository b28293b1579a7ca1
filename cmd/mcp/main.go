package main

import (
	"flag"
	"log"
	"os"

	mcpcmd "github.com/louisbranch/pound-of-flesh/internal/cmd/mcp"
	platformcmd "github.com/louisbranch/pound-of-flesh/internal/platform/cmd"
)

// main starts the cybermod MCP server on stdio or HTTP.
func main() {
	log.SetPrefix("[MCP] ")
	if err := platformcmd.Execute(platformcmd.ServiceMCP, flag.CommandLine, os.Args[1:], mcpcmd.ParseConfig, mcpcmd.Run); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
