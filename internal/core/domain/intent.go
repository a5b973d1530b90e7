package domain

import (
	"fmt"
	"strings"
)

// Intent selects which flow answers a chat query.
type Intent string

// Chat intents.
const (
	// IntentAuto infers the intent from keywords in the query text.
	IntentAuto Intent = "auto"

	// IntentChat answers conversationally.
	IntentChat Intent = "chat"

	// IntentReport produces a PDF report.
	IntentReport Intent = "report"

	// IntentLearningSummary suggests what to learn next.
	IntentLearningSummary Intent = "learning_summary"
)

// IsValid returns true if the intent is recognised. The empty intent
// is treated as IntentAuto.
func (i Intent) IsValid() bool {
	switch i {
	case "", IntentAuto, IntentChat, IntentReport, IntentLearningSummary:
		return true
	default:
		return false
	}
}

// IsExplicit returns true when the caller picked the intent.
func (i Intent) IsExplicit() bool {
	return i != "" && i != IntentAuto
}

// String returns the string representation.
func (i Intent) String() string {
	if i == "" {
		return string(IntentAuto)
	}
	return string(i)
}

// ParseIntent converts a string into an Intent.
func ParseIntent(s string) (Intent, error) {
	i := Intent(strings.ToLower(strings.TrimSpace(s)))
	if i == "" {
		return IntentAuto, nil
	}
	if !i.IsValid() {
		return "", fmt.Errorf("%w: unknown intent %q", ErrInvalidInput, s)
	}
	return i, nil
}

// AllIntents returns every explicit intent.
func AllIntents() []Intent {
	return []Intent{IntentChat, IntentReport, IntentLearningSummary}
}

// Keyword sets checked by DetectIntent, in priority order.
var (
	reportKeywords   = []string{"report", "analysis", "overview"}
	learningKeywords = []string{"summary", "learning"}
)

// DetectIntent infers an intent from free text by case-insensitive
// substring match. Report keywords are checked first, so a query that
// mentions both "report" and "summary" resolves to IntentReport.
// Callers that know the intent should set ChatQuery.Intent instead.
func DetectIntent(text string) Intent {
	q := strings.ToLower(text)
	if containsAny(q, reportKeywords) {
		return IntentReport
	}
	if containsAny(q, learningKeywords) {
		return IntentLearningSummary
	}
	return IntentChat
}

// Resolve returns the intent to serve for query text.
func (i Intent) Resolve(text string) Intent {
	if i.IsExplicit() {
		return i
	}
	return DetectIntent(text)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
