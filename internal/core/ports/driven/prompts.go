package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names return domain.ErrNotFound.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names, one per AI flow. Templates use text/template
// syntax and are executed against the flow's input struct.
const (
	// PromptChat is the persona and fact sheet for general chat.
	// Fields: .Query, .Facts.
	PromptChat = "chat"

	// PromptDashboardChat answers questions about a dashboard.
	// Fields: .Query, .Mode, .Context, .Facts.
	PromptDashboardChat = "dashboard_chat"

	// PromptFloatInsights produces 3-4 bullet insights for a float.
	// Fields: .FloatID, .Summary.
	PromptFloatInsights = "float_insights"

	// PromptVisualization suggests charts for a query.
	// Fields: .Query, .Components.
	PromptVisualization = "visualization_suggestion"

	// PromptLearningSummary suggests what to learn next.
	// Fields: .InteractionData.
	PromptLearningSummary = "learning_summary"

	// PromptReportContent produces structured report content.
	// Fields: .Query.
	PromptReportContent = "report_content"
)

// AllPrompts returns every well-known prompt name.
func AllPrompts() []string {
	return []string{
		PromptChat,
		PromptDashboardChat,
		PromptFloatInsights,
		PromptVisualization,
		PromptLearningSummary,
		PromptReportContent,
	}
}
