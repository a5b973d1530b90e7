package driven

// CannedAnswers holds prepared answers to common questions. Sessions
// answer an exact question match without calling the model.
type CannedAnswers interface {
	// Lookup returns the answer for a case-insensitive exact question match.
	Lookup(question string) (string, bool)

	// Questions returns every known question in a stable order.
	Questions() []string
}
