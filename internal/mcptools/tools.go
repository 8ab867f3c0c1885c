// Package mcptools exposes the calculator engine and the compute service as
// MCP tools.
package mcptools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"calculator-api/internal/compute"
)

// Tool name prefix for all MCP tools
const ToolPrefix = "calculator."

// Tool names
const (
	ToolCompute = ToolPrefix + "compute"
	ToolKeys    = ToolPrefix + "keys"
)

// NewServer creates an MCP server with every calculator tool registered.
func NewServer(name, version string, svc *compute.Service) *server.MCPServer {
	s := server.NewMCPServer(name, version)

	computeTool := NewComputeTool(svc)
	s.AddTool(computeTool.GetTool(), computeTool.Handle)

	keysTool := NewKeysTool()
	s.AddTool(keysTool.GetTool(), keysTool.Handle)

	return s
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
