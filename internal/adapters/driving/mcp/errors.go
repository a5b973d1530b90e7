// Package mcp provides an MCP (Model Context Protocol) server adapter for Blue Query.
// It lets AI assistants ask ocean questions, generate reports and datasets,
// and browse the float catalogue.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")

// errNotConfigured is returned by tools whose service was not wired.
var errNotConfigured = errors.New("mcp: tool is not configured")
