package mcptools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"calculator-api/internal/compute"
)

// ComputeTool handles calculator.compute requests
type ComputeTool struct {
	svc *compute.Service
}

// NewComputeTool creates a new compute tool
func NewComputeTool(svc *compute.Service) *ComputeTool {
	return &ComputeTool{svc: svc}
}

// GetTool returns the MCP tool definition
func (t *ComputeTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolCompute,
		mcp.WithDescription("Compute factorial, fibonacci or nthPrime of an integer between 0 and 1000"),
		mcp.WithString("operation", mcp.Required(), mcp.Description("One of factorial, fibonacci, nthPrime")),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Integer argument between 0 and 1000")),
	)
}

// Handle processes the tool request
func (t *ComputeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	operation, _ := json.Marshal(mcp.ParseArgument(req, "operation", nil))
	number, _ := json.Marshal(mcp.ParseArgument(req, "number", nil))

	request, err := compute.Validate(operation, number)
	if err == nil {
		var outcome compute.Outcome
		outcome, err = t.svc.Calculate(ctx, request)
		if err == nil {
			return jsonResult(compute.CalculateResponse{Result: outcome.Result})
		}
	}

	var verr *compute.ValidationError
	if errors.As(err, &verr) {
		data, _ := json.Marshal(compute.ValidationResponse{Errors: verr.Errors})
		return mcp.NewToolResultError(string(data)), nil
	}
	return mcp.NewToolResultError("Calculation error: " + err.Error()), nil
}
