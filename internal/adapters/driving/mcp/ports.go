package mcp

import (
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat routes questions to the AI flows.
	Chat driving.ChatService

	// Flows runs individual AI flows.
	Flows driving.FlowService

	// Reports renders report documents.
	Reports driving.ReportService

	// Datasets generates synthetic chart datasets.
	Datasets driving.DatasetService

	// Floats exposes the float catalogue.
	Floats driving.FloatService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	// The remaining ports disable their tools when nil.
	return nil
}
