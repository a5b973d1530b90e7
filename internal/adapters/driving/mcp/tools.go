package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query  string `json:"query" jsonschema:"the question about ARGO floats or ocean conditions"`
	Intent string `json:"intent,omitempty" jsonschema:"chat, report or learning_summary (default: detected from the query)"`
	Mode   string `json:"mode,omitempty" jsonschema:"normal or deeper (deeper forwards to the research backend)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Intent        string `json:"intent"`
	Response      string `json:"response"`
	ReportDataURI string `json:"report_data_uri,omitempty"`
}

// ReportInput is the input schema for the generate_report tool.
type ReportInput struct {
	Query string `json:"query" jsonschema:"what the report should cover"`
}

// ReportOutput is the output schema for the generate_report tool.
type ReportOutput struct {
	Title       string   `json:"title"`
	KeyInsights []string `json:"key_insights"`
	MIMEType    string   `json:"mime_type"`
	Pages       int      `json:"pages"`
	DataURI     string   `json:"data_uri"`
}

// VisualizationInput is the input schema for the suggest_visualizations tool.
type VisualizationInput struct {
	Query string `json:"query" jsonschema:"the analysis the charts should support"`
}

// VisualizationOutput is the output schema for the suggest_visualizations tool.
type VisualizationOutput struct {
	Suggestion any `json:"suggestion"`
}

// DatasetInput is the input schema for the generate_dataset tool.
type DatasetInput struct {
	Kind  string `json:"kind" jsonschema:"chart kind, e.g. ocean_health, ts_diagram, forecast"`
	Seed  uint32 `json:"seed,omitempty" jsonschema:"generator seed (default: the kind's fixed seed)"`
	Count int    `json:"count,omitempty" jsonschema:"number of points, days or records (default per kind)"`
}

// DatasetOutput is the output schema for the generate_dataset tool.
type DatasetOutput struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// FloatsInput is the input schema for the list_floats tool.
type FloatsInput struct {
	Sea string `json:"sea,omitempty" jsonschema:"only return floats in this sea, e.g. Arabian Sea"`
}

// FloatsOutput is the output schema for the list_floats tool.
type FloatsOutput struct {
	Floats []domain.Float `json:"floats"`
	Count  int            `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask Blue Query a question; reports and learning summaries are detected from the wording",
	}, s.handleAsk)

	if s.ports.Reports != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_report",
			Description: "Generate a PDF data insights report",
		}, s.handleReport)
	}
	if s.ports.Flows != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "suggest_visualizations",
			Description: "Suggest dashboard charts and their controls for a query",
		}, s.handleVisualizations)
	}
	if s.ports.Datasets != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_dataset",
			Description: "Generate a deterministic synthetic chart dataset",
		}, s.handleDataset)
	}
	if s.ports.Floats != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_floats",
			Description: "List the ARGO floats in the catalogue",
		}, s.handleListFloats)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	intent, err := domain.ParseIntent(input.Intent)
	if err != nil {
		return nil, AskOutput{}, err
	}
	mode, err := domain.ParseChatMode(input.Mode)
	if err != nil {
		return nil, AskOutput{}, err
	}

	result, err := s.ports.Chat.Handle(ctx, domain.ChatQuery{Text: input.Query, Intent: intent, Mode: mode})
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Intent:        result.Intent.String(),
		Response:      result.Response,
		ReportDataURI: result.ReportDataURI(),
	}, nil
}

// handleReport handles the generate_report tool invocation.
func (s *Server) handleReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	if s.ports.Reports == nil {
		return nil, ReportOutput{}, errNotConfigured
	}
	report, err := s.ports.Reports.Generate(ctx, input.Query)
	if err != nil {
		return nil, ReportOutput{}, err
	}

	return nil, ReportOutput{
		Title:       report.Content.Title,
		KeyInsights: report.Content.KeyInsights,
		MIMEType:    report.Document.MIMEType,
		Pages:       report.Document.Pages,
		DataURI:     report.Document.DataURI(),
	}, nil
}

// handleVisualizations handles the suggest_visualizations tool invocation.
func (s *Server) handleVisualizations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VisualizationInput,
) (*mcp.CallToolResult, VisualizationOutput, error) {
	if s.ports.Flows == nil {
		return nil, VisualizationOutput{}, errNotConfigured
	}
	suggestion, err := s.ports.Flows.SuggestVisualizations(ctx, domain.VisualizationInput{Query: input.Query})
	if err != nil {
		return nil, VisualizationOutput{}, err
	}
	return nil, VisualizationOutput{Suggestion: suggestion}, nil
}

// handleDataset handles the generate_dataset tool invocation.
func (s *Server) handleDataset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DatasetInput,
) (*mcp.CallToolResult, DatasetOutput, error) {
	if s.ports.Datasets == nil {
		return nil, DatasetOutput{}, errNotConfigured
	}
	kind, err := domain.ParseChartKind(input.Kind)
	if err != nil {
		return nil, DatasetOutput{}, err
	}

	data, err := s.ports.Datasets.Generate(ctx, kind, domain.DatasetParams{Seed: input.Seed, Count: input.Count})
	if err != nil {
		return nil, DatasetOutput{}, err
	}
	return nil, DatasetOutput{Kind: string(kind), Data: data}, nil
}

// handleListFloats handles the list_floats tool invocation.
func (s *Server) handleListFloats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FloatsInput,
) (*mcp.CallToolResult, FloatsOutput, error) {
	if s.ports.Floats == nil {
		return nil, FloatsOutput{}, errNotConfigured
	}
	floats, err := s.ports.Floats.List(ctx)
	if err != nil {
		return nil, FloatsOutput{}, err
	}

	output := FloatsOutput{Floats: make([]domain.Float, 0, len(floats))}
	for _, f := range floats {
		if input.Sea != "" && !strings.EqualFold(f.Sea, input.Sea) {
			continue
		}
		output.Floats = append(output.Floats, f)
	}
	output.Count = len(output.Floats)

	return nil, output, nil
}
