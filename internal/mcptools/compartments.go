package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"axons/internal/apperr"
	"axons/internal/domain"
	"axons/internal/memorygraph"
)

type CreateCompartmentArgs struct {
	Name                     string `json:"name" jsonschema:"Compartment name"`
	Permeability             string `json:"permeability" jsonschema:"OPEN, CLOSED, OSMOTIC_INWARD, or OSMOTIC_OUTWARD"`
	AllowExternalConnections bool   `json:"allowExternalConnections,omitempty" jsonschema:"Permit organic edges to cross this compartment's boundary"`
	Description              string `json:"description,omitempty" jsonschema:"Optional description"`
}

type AddToCompartmentArgs struct {
	MemoryIDs []string `json:"memoryIds" jsonschema:"Memory ids to assign"`
	Name      string   `json:"name" jsonschema:"Compartment name"`
}

type SetActiveArgs struct {
	CompartmentID *string `json:"compartmentId,omitempty" jsonschema:"Compartment name; omit or null to clear"`
}

// SetPermeabilityArgs implements §6.1's set_permeability(compartment_id|
// memory_id, value): exactly one of CompartmentID/MemoryID must be set.
type SetPermeabilityArgs struct {
	CompartmentID string `json:"compartmentId,omitempty" jsonschema:"Compartment name (mutually exclusive with memoryId)"`
	MemoryID      string `json:"memoryId,omitempty" jsonschema:"Memory id (mutually exclusive with compartmentId)"`
	Value         string `json:"value" jsonschema:"OPEN, CLOSED, OSMOTIC_INWARD, or OSMOTIC_OUTWARD"`
}

type CheckDataFlowArgs struct {
	From string `json:"from" jsonschema:"Source memory id"`
	To   string `json:"to" jsonschema:"Destination memory id"`
}

type CheckDataFlowResult struct {
	Allowed bool `json:"allowed"`
}

func registerCompartmentTools(server *mcp.Server, svc *memorygraph.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create",
		Description: "Create or update a Compartment (interned by name).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args CreateCompartmentArgs) (*mcp.CallToolResult, any, error) {
		name, err := svc.CreateCompartment(ctx, args.Name, domain.Permeability(args.Permeability), args.AllowExternalConnections, args.Description)
		if err != nil {
			return errResult(err)
		}
		return textResult("created compartment %s", name), CreatedIDResult{ID: name}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_to",
		Description: "Assign memories to a compartment.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args AddToCompartmentArgs) (*mcp.CallToolResult, any, error) {
		if err := svc.AddMemoryToCompartment(ctx, args.MemoryIDs, args.Name); err != nil {
			return errResult(err)
		}
		return textResult("assigned %d memories to %s", len(args.MemoryIDs), args.Name), map[string]any{"ok": true}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_active",
		Description: "Set (or clear) the service's active compartment for subsequent store calls.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args SetActiveArgs) (*mcp.CallToolResult, any, error) {
		if err := svc.SetActiveCompartment(ctx, args.CompartmentID); err != nil {
			return errResult(err)
		}
		return textResult("active compartment updated"), map[string]any{"ok": true}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_permeability",
		Description: "Set a Compartment's or a Memory's permeability directly.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args SetPermeabilityArgs) (*mcp.CallToolResult, any, error) {
		value := domain.Permeability(args.Value)
		switch {
		case args.CompartmentID != "":
			if err := svc.UpdateCompartment(ctx, args.CompartmentID, &value, nil, nil); err != nil {
				return errResult(err)
			}
		case args.MemoryID != "":
			if err := svc.SetMemoryPermeability(ctx, args.MemoryID, value); err != nil {
				return errResult(err)
			}
		default:
			return errResult(apperr.NewMissingRequired("compartmentId|memoryId"))
		}
		return textResult("permeability updated"), map[string]any{"ok": true}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_data_flow",
		Description: "Evaluate can_data_flow(from, to) under C2's fail-safe rule.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args CheckDataFlowArgs) (*mcp.CallToolResult, any, error) {
		ok, err := svc.CheckDataFlow(ctx, args.From, args.To)
		if err != nil {
			return errResult(err)
		}
		return textResult("allowed=%v", ok), CheckDataFlowResult{Allowed: ok}, nil
	})
}
