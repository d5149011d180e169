// Package mcptools builds the {name, schema, handler} table §6.1 calls the
// "small table ... replaces any framework-specific decoration" — and
// registers it against github.com/modelcontextprotocol/go-sdk/mcp via
// mcp.AddTool. Grounded on the go-sdk usage pattern shown in the pack's
// AgenticMemoryServer.registerTools (args structs with jsonschema tags,
// mcp.AddTool(server, &mcp.Tool{Name, Description}, handler)).
package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"axons/internal/domain"
	"axons/internal/memorygraph"
)

// Register wires every §6.1 tool group (one register*Tools function per
// group) against a *mcp.Server.
func Register(server *mcp.Server, svc *memorygraph.Service) {
	registerMemoryTools(server, svc)
	registerAssociationTools(server, svc)
	registerPlasticityTools(server, svc)
	registerCompartmentTools(server, svc)
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}}}
}

func errResult(err error) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{IsError: true, Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}}}, map[string]any{"error": err.Error()}, nil
}

// StoreArgs is store's argument shape (spec §4.1 create_memory).
type StoreArgs struct {
	Content       string  `json:"content" jsonschema:"The memory's content text"`
	Summary       string  `json:"summary" jsonschema:"A short summary of the content"`
	Confidence    float64 `json:"confidence" jsonschema:"Confidence in [0,1]"`
	Permeability  string  `json:"permeability,omitempty" jsonschema:"OPEN, CLOSED, OSMOTIC_INWARD, or OSMOTIC_OUTWARD (default OPEN)"`
	CompartmentID *string `json:"compartmentId,omitempty" jsonschema:"Compartment to assign; omit to use the active compartment, empty string for none"`
}

type StoreResult struct {
	ID string `json:"id"`
}

// RecallArgs is recall's argument shape (spec §4.1 get_memory).
type RecallArgs struct {
	ID                    string `json:"id" jsonschema:"Memory id"`
	ApplyRetrievalEffects bool   `json:"applyRetrievalEffects,omitempty" jsonschema:"Apply C1 retrieval-strengthens side-effects"`
}

// SearchArgs is search's argument shape (spec §4.1 search_memories).
type SearchArgs struct {
	Term  string `json:"term" jsonschema:"Search term"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
}

type SearchResult struct {
	Memories []map[string]any `json:"memories"`
}

// RelatedArgs is related's argument shape (spec §4.1 get_related_memories).
type RelatedArgs struct {
	ID                  string `json:"id" jsonschema:"Memory id"`
	Limit               int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
	RespectPermeability *bool  `json:"respectPermeability,omitempty" jsonschema:"Apply C2 post-filtering (default true)"`
}

func registerMemoryTools(server *mcp.Server, svc *memorygraph.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "store",
		Description: "Store a new memory and optionally assign it to a compartment.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args StoreArgs) (*mcp.CallToolResult, any, error) {
		perm := domain.Open
		if args.Permeability != "" {
			perm = domain.Permeability(args.Permeability)
		}
		id, err := svc.CreateMemory(ctx, args.Content, args.Summary, args.Confidence, perm, args.CompartmentID)
		if err != nil {
			return errResult(err)
		}
		return textResult("stored memory %s", id), StoreResult{ID: id}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recall",
		Description: "Retrieve a memory by id, bumping its access count.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args RecallArgs) (*mcp.CallToolResult, any, error) {
		rec, err := svc.GetMemory(ctx, args.ID, args.ApplyRetrievalEffects)
		if err != nil {
			return errResult(err)
		}
		return textResult("recalled memory %s", args.ID), rec, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Full-text (or substring fallback) search over memory content and summary.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		rows, err := svc.SearchMemories(ctx, args.Term, limit)
		if err != nil {
			return errResult(err)
		}
		return textResult("found %d memories", len(rows)), toMaps(rows), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "related",
		Description: "Memories sharing a concept or keyword with the given memory.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args RelatedArgs) (*mcp.CallToolResult, any, error) {
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		respect := true
		if args.RespectPermeability != nil {
			respect = *args.RespectPermeability
		}
		rows, err := svc.GetRelatedMemories(ctx, args.ID, limit, respect)
		if err != nil {
			return errResult(err)
		}
		return textResult("found %d related memories", len(rows)), toMaps(rows), nil
	})
}

func toMaps[T ~map[string]any](rows []T) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = map[string]any(r)
	}
	return out
}
