package services

import "github.com/custodia-labs/bluequery/internal/core/domain"

// JSON schemas sent to providers that support structured output. They
// mirror the Validate methods of the domain output types.

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func stringArray(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items":       map[string]any{"type": "string"},
		"minItems":    1,
	}
}

var chatAnswerSchema = objectSchema(map[string]any{
	"answer": stringProp("Markdown answer to the user's question."),
}, "answer")

var floatInsightsSchema = objectSchema(map[string]any{
	"insights": stringArray("Three or four short insights about the float."),
}, "insights")

var learningSummarySchema = objectSchema(map[string]any{
	"summary": stringProp("Markdown suggestions for what to learn next."),
}, "summary")

var reportContentSchema = objectSchema(map[string]any{
	"title":           stringProp("Report title."),
	"introduction":    stringProp("One paragraph introducing the analysis."),
	"keyInsights":     stringArray("Key findings, one sentence each."),
	"recommendations": stringProp("Recommendations paragraph."),
}, "title", "introduction", "keyInsights", "recommendations")

func visualizationSchema() map[string]any {
	components := make([]any, 0, len(domain.AllChartComponents()))
	for _, c := range domain.AllChartComponents() {
		components = append(components, string(c))
	}
	component := map[string]any{"type": "string", "enum": components}

	chart := objectSchema(map[string]any{
		"chartType":      stringProp("Human readable chart type, e.g. Scatter Plot."),
		"chartComponent": component,
		"reason":         stringProp("Why this chart fits the query."),
	}, "chartType", "chartComponent", "reason")

	number := map[string]any{"type": "number"}
	option := objectSchema(map[string]any{
		"type":         map[string]any{"type": "string", "enum": []any{"slider", "checkbox", "select"}},
		"label":        stringProp("Control label."),
		"defaultValue": map[string]any{"type": []any{"string", "number", "boolean"}},
		"min":          number,
		"max":          number,
		"step":         number,
		"options":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	}, "type", "label", "defaultValue")

	return objectSchema(map[string]any{
		"summary":              stringProp("What the user wants to see."),
		"suggestedCharts":      map[string]any{"type": "array", "items": chart, "minItems": 1},
		"defaultChart":         component,
		"customizationOptions": map[string]any{"type": "array", "items": option},
		"caption":              stringProp("Caption for the default chart."),
	}, "summary", "suggestedCharts", "defaultChart", "customizationOptions", "caption")
}
