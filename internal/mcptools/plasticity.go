package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"axons/internal/memorygraph"
)

type StrengthenArgs struct {
	A      string   `json:"a" jsonschema:"First memory id"`
	B      string   `json:"b" jsonschema:"Second memory id"`
	Amount *float64 `json:"amount,omitempty" jsonschema:"Explicit amount; omit to use C1's curve"`
}

type StrengthenResult struct {
	NewStrength float64 `json:"newStrength"`
}

type RunMaintenanceArgs struct{}

type ConnectionStatsArgs struct{}

type ConfigureArgs struct {
	Preset       string   `json:"preset,omitempty" jsonschema:"default, aggressive_learning, conservative_learning, no_plasticity, or high_decay"`
	LearningRate *float64 `json:"learningRate,omitempty" jsonschema:"Override the active config's learning rate"`
}

func registerPlasticityTools(server *mcp.Server, svc *memorygraph.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "strengthen",
		Description: "Strengthen the synaptic edge between two memories.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args StrengthenArgs) (*mcp.CallToolResult, any, error) {
		s, err := svc.StrengthenMemoryLink(ctx, args.A, args.B, args.Amount)
		if err != nil {
			return errResult(err)
		}
		return textResult("strengthened %s<->%s to %.4f", args.A, args.B, s), StrengthenResult{NewStrength: s}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "weaken",
		Description: "Weaken the synaptic edge between two memories.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args StrengthenArgs) (*mcp.CallToolResult, any, error) {
		s, err := svc.WeakenMemoryLink(ctx, args.A, args.B, args.Amount)
		if err != nil {
			return errResult(err)
		}
		return textResult("weakened %s<->%s to %.4f", args.A, args.B, s), StrengthenResult{NewStrength: s}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_maintenance",
		Description: "Run one maintenance cycle: advance the cycle counter then decay weak connections (and prune, if configured).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ RunMaintenanceArgs) (*mcp.CallToolResult, any, error) {
		if err := svc.RunMaintenanceCycle(ctx); err != nil {
			return errResult(err)
		}
		return textResult("maintenance cycle complete"), map[string]any{"ok": true}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "connection_stats",
		Description: "Aggregate statistics over every synaptic connection in the graph.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ ConnectionStatsArgs) (*mcp.CallToolResult, any, error) {
		stats, err := svc.GetConnectionStatistics(ctx)
		if err != nil {
			return errResult(err)
		}
		return textResult("%d connections", stats.Count), stats, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "configure",
		Description: "Swap the active plasticity preset and/or override its learning rate.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args ConfigureArgs) (*mcp.CallToolResult, any, error) {
		if err := svc.Configure(args.Preset, args.LearningRate); err != nil {
			return errResult(err)
		}
		return textResult("plasticity reconfigured"), map[string]any{"ok": true}, nil
	})
}
