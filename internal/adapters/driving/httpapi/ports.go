package httpapi

import (
	"errors"

	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("chat service is required")

// Ports holds the driving ports the HTTP API serves.
// Only Chat is required; routes whose port is nil answer 503.
type Ports struct {
	Chat     driving.ChatService
	Flows    driving.FlowService
	Reports  driving.ReportService
	Datasets driving.DatasetService
	Floats   driving.FloatService
	Sessions driving.ChatSessionFactory
}

// Validate checks that the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
