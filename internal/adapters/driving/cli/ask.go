package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

var (
	askIntent string
	askMode   string
	askOutput string
	askRaw    bool
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long: `Ask Blue Query a single question and print the answer.

The intent is detected from the question unless --intent is given. Report
answers attach a PDF, which is saved to --output or a file named after the
report title.

Modes:
  normal - answer with the local AI flows (default)
  deeper - forward the question to the research backend`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askIntent, "intent", "", "force an intent (auto, chat, report, learning_summary)")
	askCmd.Flags().StringVar(&askMode, "mode", "normal", "chat mode: normal or deeper")
	askCmd.Flags().StringVarP(&askOutput, "output", "o", "", "path for an attached report")
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "print the answer without markdown rendering")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(askCmd)
}

type askResult struct {
	Intent        domain.Intent `json:"intent"`
	Response      string        `json:"response"`
	ReportDataURI string        `json:"reportDataUri,omitempty"`
	ReportPath    string        `json:"reportPath,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Chat == nil {
		return errNotConfigured("chat")
	}

	intent, err := domain.ParseIntent(askIntent)
	if err != nil {
		return err
	}
	mode, err := domain.ParseChatMode(askMode)
	if err != nil {
		return err
	}

	result, err := s.Chat.Handle(cmd.Context(), domain.ChatQuery{
		Text:   strings.Join(args, " "),
		Intent: intent,
		Mode:   mode,
	})
	if err != nil {
		return err
	}

	var path string
	if result.Report != nil {
		if path, err = writeDocument(askOutput, result.Report); err != nil {
			return err
		}
	}

	if askJSON {
		return printJSON(cmd, askResult{
			Intent:        result.Intent,
			Response:      result.Response,
			ReportDataURI: result.ReportDataURI(),
			ReportPath:    path,
		})
	}

	cmd.Println(renderMarkdown(cmd, result.Response, askRaw))
	if path != "" {
		cmd.Printf("\nReport saved to %s\n", path)
	}
	return nil
}
