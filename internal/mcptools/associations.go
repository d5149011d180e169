package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"axons/internal/domain"
	"axons/internal/memorygraph"
)

type CreateConceptArgs struct {
	Name        string `json:"name" jsonschema:"Concept name"`
	Description string `json:"description,omitempty" jsonschema:"Optional description"`
}

type CreateKeywordArgs struct {
	Term string `json:"term" jsonschema:"Keyword term"`
}

type CreateTopicArgs struct {
	Name        string `json:"name" jsonschema:"Topic name"`
	Description string `json:"description,omitempty" jsonschema:"Optional description"`
}

type CreateEntityArgs struct {
	Name        string   `json:"name" jsonschema:"Entity name"`
	Type        string   `json:"type" jsonschema:"person, organization, project, tool, technology, or place"`
	Description string   `json:"description,omitempty" jsonschema:"Optional description"`
	Aliases     []string `json:"aliases,omitempty" jsonschema:"Alternate names"`
}

type CreatedIDResult struct {
	ID string `json:"id"`
}

type LinkConceptArgs struct {
	MemoryID  string  `json:"memoryId" jsonschema:"Memory id"`
	Concept   string  `json:"concept" jsonschema:"Concept name"`
	Relevance float64 `json:"relevance" jsonschema:"Relevance in [0,1]"`
}

type ByPeerArgs struct {
	Key string `json:"key" jsonschema:"Concept name, keyword term, topic name, or entity key"`
}

func registerAssociationTools(server *mcp.Server, svc *memorygraph.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_concept",
		Description: "Intern a Concept node by name (idempotent).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args CreateConceptArgs) (*mcp.CallToolResult, any, error) {
		id, err := svc.CreateConcept(ctx, args.Name, args.Description)
		if err != nil {
			return errResult(err)
		}
		return textResult("created concept %s", id), CreatedIDResult{ID: id}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_keyword",
		Description: "Intern a Keyword node by term (idempotent).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args CreateKeywordArgs) (*mcp.CallToolResult, any, error) {
		id, err := svc.CreateKeyword(ctx, args.Term)
		if err != nil {
			return errResult(err)
		}
		return textResult("created keyword %s", id), CreatedIDResult{ID: id}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_topic",
		Description: "Intern a Topic node by name (idempotent).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args CreateTopicArgs) (*mcp.CallToolResult, any, error) {
		id, err := svc.CreateTopic(ctx, args.Name, args.Description)
		if err != nil {
			return errResult(err)
		}
		return textResult("created topic %s", id), CreatedIDResult{ID: id}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_entity",
		Description: "Intern an Entity node by (name, type) (idempotent).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args CreateEntityArgs) (*mcp.CallToolResult, any, error) {
		id, err := svc.CreateEntity(ctx, args.Name, domain.EntityType(args.Type), args.Description, args.Aliases)
		if err != nil {
			return errResult(err)
		}
		return textResult("created entity %s", id), CreatedIDResult{ID: id}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "link_concept",
		Description: "Attach a memory to a concept via HAS_CONCEPT {relevance}.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args LinkConceptArgs) (*mcp.CallToolResult, any, error) {
		if err := svc.LinkConcept(ctx, args.MemoryID, args.Concept, args.Relevance); err != nil {
			return errResult(err)
		}
		return textResult("linked %s to concept %s", args.MemoryID, args.Concept), map[string]any{"ok": true}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_memories_by_concept",
		Description: "Memories linked to a concept; applies retrieval side-effects.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args ByPeerArgs) (*mcp.CallToolResult, any, error) {
		rows, err := svc.GetMemoriesByConcept(ctx, args.Key)
		if err != nil {
			return errResult(err)
		}
		return textResult("found %d memories", len(rows)), toMaps(rows), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_memories_by_keyword",
		Description: "Memories linked to a keyword.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args ByPeerArgs) (*mcp.CallToolResult, any, error) {
		rows, err := svc.GetMemoriesByKeyword(ctx, args.Key)
		if err != nil {
			return errResult(err)
		}
		return textResult("found %d memories", len(rows)), toMaps(rows), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_memories_by_topic",
		Description: "Memories linked to a topic.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args ByPeerArgs) (*mcp.CallToolResult, any, error) {
		rows, err := svc.GetMemoriesByTopic(ctx, args.Key)
		if err != nil {
			return errResult(err)
		}
		return textResult("found %d memories", len(rows)), toMaps(rows), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_memories_by_entity",
		Description: "Memories mentioning an entity.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args ByPeerArgs) (*mcp.CallToolResult, any, error) {
		rows, err := svc.GetMemoriesByEntity(ctx, args.Key)
		if err != nil {
			return errResult(err)
		}
		return textResult("found %d memories", len(rows)), toMaps(rows), nil
	})
}
