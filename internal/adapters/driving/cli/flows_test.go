package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

func TestInsightsCmd_BuildsSummaryFromFloat(t *testing.T) {
	s := setupTestServices(t)
	var got domain.FloatInsightsInput
	s.Flows = &MockFlowService{InsightsFunc: func(_ context.Context, in domain.FloatInsightsInput) (*domain.FloatInsights, error) {
		got = in
		return &domain.FloatInsights{Insights: []string{"Warm", "Salty", "Deep"}}, nil
	}}

	out, err := execute(t, "", "insights", "2902755")

	require.NoError(t, err)
	assert.Equal(t, "2902755", got.FloatID)
	assert.Contains(t, got.Summary, "Arabian Sea central")
	assert.Contains(t, out, "Insights for float 2902755:")
	assert.Contains(t, out, "  3. Deep")
}

func TestInsightsCmd_ExplicitSummary(t *testing.T) {
	s := setupTestServices(t)
	var got domain.FloatInsightsInput
	s.Flows = &MockFlowService{InsightsFunc: func(_ context.Context, in domain.FloatInsightsInput) (*domain.FloatInsights, error) {
		got = in
		return &domain.FloatInsights{Insights: []string{"ok"}}, nil
	}}

	_, err := execute(t, "", "insights", "--summary", "surface temp 29C", "unknown-float")

	require.NoError(t, err)
	assert.Equal(t, "surface temp 29C", got.Summary)
}

func TestInsightsCmd_UnknownFloat(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "insights", "0000000")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInsightsCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "insights", "--json", "2902756")

	require.NoError(t, err)
	assert.Contains(t, out, `"insights": [`)
}

func TestFloatSummary(t *testing.T) {
	f := sampleFloats()[1]

	got := floatSummary(&f)

	assert.Equal(t, "Float 2902756 in the Bay of Bengal near Bay of Bengal south (12.40, 88.30).", got)
}

func TestVisualizeCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "visualize", "temperature", "trend")

	require.NoError(t, err)
	assert.Contains(t, out, "Temperature is best shown over time.")
	assert.Contains(t, out, " * Line (MonthlyTrendArea): trend over time")
	assert.Contains(t, out, "Surface temperature")
}

func TestVisualizeCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "visualize", "--json", "temperature")

	require.NoError(t, err)
	assert.Contains(t, out, `"defaultChart": "MonthlyTrendArea"`)
}

func TestLearnCmd_Args(t *testing.T) {
	s := setupTestServices(t)
	var got string
	s.Flows = &MockFlowService{LearningFunc: func(_ context.Context, in domain.LearningSummaryInput) (*domain.LearningSummary, error) {
		got = in.InteractionData
		return &domain.LearningSummary{Summary: "Try oxygen profiles."}, nil
	}}

	out, err := execute(t, "", "learn", "asked", "about", "salinity")

	require.NoError(t, err)
	assert.Equal(t, "asked about salinity", got)
	assert.Contains(t, out, "Try oxygen profiles.")
}

func TestLearnCmd_Stdin(t *testing.T) {
	s := setupTestServices(t)
	var got string
	s.Flows = &MockFlowService{LearningFunc: func(_ context.Context, in domain.LearningSummaryInput) (*domain.LearningSummary, error) {
		got = in.InteractionData
		return &domain.LearningSummary{Summary: "ok"}, nil
	}}

	_, err := execute(t, "User asked: \"temperature\"\nUser asked: \"pH\"\n", "learn", "-")

	require.NoError(t, err)
	assert.Equal(t, "User asked: \"temperature\"\nUser asked: \"pH\"", got)
}

func TestFlowCmds_NotConfigured(t *testing.T) {
	for _, args := range [][]string{
		{"insights", "2902755"},
		{"visualize", "x"},
		{"learn", "x"},
	} {
		t.Run(args[0], func(t *testing.T) {
			s := setupTestServices(t)
			s.Flows = nil

			_, err := execute(t, "", args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "flow service not configured")
		})
	}
}
