package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for Blue Query resources.
	uriScheme = "bluequery://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Floats != nil {
		// Static resource for the float catalogue.
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "floats",
			Name:        "floats",
			Description: "ARGO floats in the catalogue",
			MIMEType:    "application/json",
		}, s.handleFloatsResource)

		// Template for a single float.
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "floats/{floatId}",
			Name:        "float",
			Description: "A single ARGO float",
			MIMEType:    "application/json",
		}, s.handleFloatResource)
	}

	if s.ports.Datasets != nil {
		// Template for default datasets.
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "datasets/{kind}",
			Name:        "dataset",
			Description: "Synthetic chart dataset generated with the kind's default seed",
			MIMEType:    "application/json",
		}, s.handleDatasetResource)
	}
}

// handleFloatsResource returns every float.
func (s *Server) handleFloatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	floats, err := s.ports.Floats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing floats: %w", err)
	}
	return jsonResource(req.Params.URI, floats)
}

// handleFloatResource returns one float.
func (s *Server) handleFloatResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract floatId from URI: bluequery://floats/{floatId}
	id := trimURI(req.Params.URI, "floats/")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	f, err := s.ports.Floats.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting float: %w", err)
	}
	return jsonResource(req.Params.URI, f)
}

// handleDatasetResource returns a dataset generated with default parameters.
func (s *Server) handleDatasetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, err := domain.ParseChartKind(trimURI(req.Params.URI, "datasets/"))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := s.ports.Datasets.Generate(ctx, kind, domain.DatasetParams{})
	if err != nil {
		return nil, fmt.Errorf("generating dataset: %w", err)
	}
	return jsonResource(req.Params.URI, data)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// trimURI extracts the trailing identifier from a URI like bluequery://{prefix}{id}.
func trimURI(uri, prefix string) string {
	prefix = uriScheme + prefix
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
