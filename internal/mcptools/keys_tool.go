package mcptools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"calculator-api/internal/calculator"
)

// KeysTool replays calculator key presses
type KeysTool struct{}

// NewKeysTool creates a new keys tool
func NewKeysTool() *KeysTool {
	return &KeysTool{}
}

// GetTool returns the MCP tool definition
func (t *KeysTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolKeys,
		mcp.WithDescription("Press calculator keys on a fresh calculator and return the final display and state"),
		mcp.WithString("keys", mcp.Required(), mcp.Description(`Space separated keys, e.g. "1 2 + 3 =". Supports 0-9 . + - * / = % ± C`)),
	)
}

// Handle processes the tool request
func (t *KeysTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := strings.Fields(mcp.ParseString(req, "keys", ""))
	if len(keys) == 0 {
		return mcp.NewToolResultError("keys parameter is required"), nil
	}

	state, steps, err := calculator.Replay(calculator.NewState(), keys)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(calculator.KeysResponse{State: state, Steps: steps})
}
