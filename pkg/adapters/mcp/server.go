package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/vlogger/internal/presentation/graph"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// StagesURI is the resource that describes the pipeline.
const StagesURI = "vlogger://stages"

// Engine defines what the MCP server needs from the pipeline.
type Engine interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Result, error)
	Stages() []domain.Stage
}

// StagesResponse is the payload of the stages resource.
type StagesResponse struct {
	Stages  []domain.Stage `json:"stages"`
	Mermaid string         `json:"mermaid"`
}

// Server exposes the itinerary pipeline as an MCP tool.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("vlogger-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	tool := mcp.NewTool("generate_itinerary",
		mcp.WithDescription("Plan a travel itinerary for a location: attractions, foods, a day-by-day plan, vlog narration and a quality score."),
		mcp.WithString("location", mcp.Required(), mcp.Description("Destination to plan for")),
		mcp.WithString("user_prefs", mcp.Description("JSON-encoded object of preferences, e.g. {\"duration\": 3, \"style\": \"adventurous\"}")),
	)
	s.mcpServer.AddTool(tool, s.handleGenerate)
}

// generateArgs are the generate_itinerary arguments.
// UserPrefs may arrive as a JSON string or as an object, depending on the client.
type generateArgs struct {
	Location  string `mapstructure:"location"`
	UserPrefs any    `mapstructure:"user_prefs"`
}

func (a generateArgs) prefs() (domain.Prefs, error) {
	switch v := a.UserPrefs.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return domain.Prefs(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		var prefs domain.Prefs
		if err := json.Unmarshal([]byte(v), &prefs); err != nil {
			return nil, fmt.Errorf("user_prefs must be a JSON object: %w", err)
		}
		return prefs, nil
	default:
		return nil, fmt.Errorf("user_prefs must be a JSON object, got %T", v)
	}
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args generateArgs
	if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Location == "" {
		return mcp.NewToolResultError("location is required"), nil
	}
	prefs, err := args.prefs()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.engine.Generate(ctx, domain.Request{Location: args.Location, UserPrefs: prefs})
	if err != nil {
		s.logger.Error("MCP generate failed", "location", args.Location, "error", err)
		return mcp.NewToolResultError(domain.Cause(err)), nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(StagesURI, "Pipeline Stages",
		mcp.WithMIMEType("application/json"),
	), s.handleStages)
}

func (s *Server) handleStages(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stages := s.engine.Stages()
	data, err := json.Marshal(StagesResponse{
		Stages:  stages,
		Mermaid: graph.GenerateMermaid(stages, nil),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode stages: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StagesURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
