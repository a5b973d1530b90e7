// Package domain defines the core business entities for Blue Query.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ChatMessage, ChatQuery, ChatResult: a single conversational turn
//   - Flow outputs: ChatAnswer, FloatInsights, VisualizationSuggestion,
//     LearningSummary, ReportContent
//   - Float: an ARGO float in the baseline dataset
//   - ChartData: the closed set of synthetic chart datasets
//   - Document: a rendered report ready for download
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
