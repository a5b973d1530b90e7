package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Chat == nil {
		ports.Chat = &mockChatService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the routed answer", func(t *testing.T) {
		chat := &mockChatService{result: &domain.ChatResult{Intent: domain.IntentChat, Response: "Warm water."}}
		server := newTestServer(t, &Ports{Chat: chat})

		_, output, err := server.handleAsk(ctx, nil, AskInput{Query: "How warm is it?"})

		require.NoError(t, err)
		assert.Equal(t, "chat", output.Intent)
		assert.Equal(t, "Warm water.", output.Response)
		assert.Empty(t, output.ReportDataURI)
		assert.Equal(t, domain.IntentAuto, chat.query.Intent)
		assert.Equal(t, domain.ChatModeNormal, chat.query.Mode)
	})

	t.Run("includes report data uri", func(t *testing.T) {
		chat := &mockChatService{result: &domain.ChatResult{
			Intent:   domain.IntentReport,
			Response: "Report ready.",
			Report:   &domain.Document{MIMEType: domain.MIMETypePDF, Data: []byte("%PDF")},
		}}
		server := newTestServer(t, &Ports{Chat: chat})

		_, output, err := server.handleAsk(ctx, nil, AskInput{Query: "report", Intent: "report", Mode: "deeper"})

		require.NoError(t, err)
		assert.Equal(t, "data:application/pdf;base64,JVBERg==", output.ReportDataURI)
		assert.Equal(t, domain.IntentReport, chat.query.Intent)
		assert.Equal(t, domain.ChatModeDeeper, chat.query.Mode)
	})

	t.Run("rejects unknown intent", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Query: "q", Intent: "poem"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Query: "q", Mode: "shallow"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on chat failure", func(t *testing.T) {
		chat := &mockChatService{err: domain.NewUserError(domain.MsgChatFailure, domain.ErrUpstreamModel)}
		server := newTestServer(t, &Ports{Chat: chat})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Query: "q"})

		assert.ErrorIs(t, err, domain.ErrUpstreamModel)
	})
}

func TestServer_handleReport(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report document", func(t *testing.T) {
		reports := &mockReportService{report: &driving.Report{
			Content:  &domain.ReportContent{Title: "Salinity", KeyInsights: []string{"a", "b"}},
			Document: &domain.Document{MIMEType: domain.MIMETypePDF, Data: []byte("%PDF"), Pages: 2},
		}}
		server := newTestServer(t, &Ports{Reports: reports})

		_, output, err := server.handleReport(ctx, nil, ReportInput{Query: "salinity"})

		require.NoError(t, err)
		assert.Equal(t, "Salinity", output.Title)
		assert.Equal(t, []string{"a", "b"}, output.KeyInsights)
		assert.Equal(t, 2, output.Pages)
		assert.Equal(t, domain.MIMETypePDF, output.MIMEType)
		assert.Equal(t, "data:application/pdf;base64,JVBERg==", output.DataURI)
	})

	t.Run("not configured", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleReport(ctx, nil, ReportInput{Query: "q"})

		assert.ErrorIs(t, err, errNotConfigured)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Reports: &mockReportService{err: errors.New("render failed")}})

		_, _, err := server.handleReport(ctx, nil, ReportInput{Query: "q"})

		assert.EqualError(t, err, "render failed")
	})
}

func TestServer_handleVisualizations(t *testing.T) {
	suggestion := &domain.VisualizationSuggestion{Summary: "Use a scatter."}
	server := newTestServer(t, &Ports{Flows: &mockFlowService{suggestion: suggestion}})

	_, output, err := server.handleVisualizations(context.Background(), nil, VisualizationInput{Query: "oxygen"})

	require.NoError(t, err)
	assert.Same(t, suggestion, output.Suggestion)
}

func TestServer_handleDataset(t *testing.T) {
	ctx := context.Background()

	t.Run("generates the requested kind", func(t *testing.T) {
		datasets := &mockDatasetService{data: &domain.RadialGaugeData{Baseline: 60, Optimized: 80}}
		server := newTestServer(t, &Ports{Datasets: datasets})

		_, output, err := server.handleDataset(ctx, nil, DatasetInput{Kind: "radial-gauge", Seed: 7, Count: 3})

		require.NoError(t, err)
		assert.Equal(t, "radial_gauge", output.Kind)
		assert.Equal(t, domain.ChartRadialGauge, datasets.kind)
		assert.Equal(t, domain.DatasetParams{Seed: 7, Count: 3}, datasets.params)
		assert.IsType(t, &domain.RadialGaugeData{}, output.Data)
	})

	t.Run("unknown kind", func(t *testing.T) {
		server := newTestServer(t, &Ports{Datasets: &mockDatasetService{}})

		_, _, err := server.handleDataset(ctx, nil, DatasetInput{Kind: "pie"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestServer_handleListFloats(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &Ports{Floats: &mockFloatService{floats: sampleFloats()}})

	t.Run("all floats", func(t *testing.T) {
		_, output, err := server.handleListFloats(ctx, nil, FloatsInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("filters by sea case-insensitively", func(t *testing.T) {
		_, output, err := server.handleListFloats(ctx, nil, FloatsInput{Sea: "arabian sea"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "2902755", output.Floats[0].ID)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		failing := newTestServer(t, &Ports{Floats: &mockFloatService{err: errors.New("db down")}})

		_, _, err := failing.handleListFloats(ctx, nil, FloatsInput{})

		assert.Error(t, err)
	})
}
