package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

var (
	insightsSummary string
	insightsJSON    bool
	visualizeJSON   bool
	learnJSON       bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights [float-id]",
	Short: "Generate insights for a float",
	Long: `Generate three or four short insights about an ARGO float.

Without --summary the float's location from the dataset is used as the
data summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runInsights,
}

var visualizeCmd = &cobra.Command{
	Use:   "visualize [query]",
	Short: "Suggest charts for a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVisualize,
}

var learnCmd = &cobra.Command{
	Use:   "learn [interaction notes]",
	Short: "Suggest what to explore next",
	Long: `Summarise past interactions and suggest what to learn next.

Pass the interaction notes as arguments, or "-" to read them from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLearn,
}

func init() {
	insightsCmd.Flags().StringVar(&insightsSummary, "summary", "", "data summary for the float")
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "output results as JSON")
	visualizeCmd.Flags().BoolVar(&visualizeJSON, "json", false, "output results as JSON")
	learnCmd.Flags().BoolVar(&learnJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(insightsCmd, visualizeCmd, learnCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Flows == nil {
		return errNotConfigured("flow")
	}

	floatID := args[0]
	summary := insightsSummary
	if summary == "" && s.Floats != nil {
		f, err := s.Floats.Get(cmd.Context(), floatID)
		if err != nil {
			return err
		}
		summary = floatSummary(f)
	}

	insights, err := s.Flows.FloatInsights(cmd.Context(), domain.FloatInsightsInput{
		FloatID: floatID,
		Summary: summary,
	})
	if err != nil {
		return err
	}

	if insightsJSON {
		return printJSON(cmd, insights)
	}
	cmd.Printf("Insights for float %s:\n", floatID)
	for i, insight := range insights.Insights {
		cmd.Printf("  %d. %s\n", i+1, insight)
	}
	return nil
}

// floatSummary describes a float for the insights flow.
func floatSummary(f *domain.Float) string {
	return fmt.Sprintf("Float %s in the %s near %s (%.2f, %.2f).", f.ID, f.Sea, f.Location, f.Lat, f.Lng)
}

func runVisualize(cmd *cobra.Command, args []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Flows == nil {
		return errNotConfigured("flow")
	}

	suggestion, err := s.Flows.SuggestVisualizations(cmd.Context(), domain.VisualizationInput{
		Query: strings.Join(args, " "),
	})
	if err != nil {
		return err
	}

	if visualizeJSON {
		return printJSON(cmd, suggestion)
	}
	cmd.Println(suggestion.Summary)
	cmd.Println()
	for _, c := range suggestion.SuggestedCharts {
		marker := " "
		if c.ChartComponent == suggestion.DefaultChart {
			marker = "*"
		}
		cmd.Printf(" %s %s (%s): %s\n", marker, c.ChartType, c.ChartComponent, c.Reason)
	}
	if suggestion.Caption != "" {
		cmd.Printf("\n%s\n", suggestion.Caption)
	}
	return nil
}

func runLearn(cmd *cobra.Command, args []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Flows == nil {
		return errNotConfigured("flow")
	}

	notes := strings.Join(args, " ")
	if notes == "-" {
		data, err := readAll(cmd)
		if err != nil {
			return err
		}
		notes = data
	}

	summary, err := s.Flows.LearningSummary(cmd.Context(), domain.LearningSummaryInput{InteractionData: notes})
	if err != nil {
		return err
	}

	if learnJSON {
		return printJSON(cmd, summary)
	}
	cmd.Println(renderMarkdown(cmd, summary.Summary, false))
	return nil
}
