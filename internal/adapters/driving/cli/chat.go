package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui"
	"github.com/custodia-labs/bluequery/internal/core/domain"
)

var (
	chatMode      string
	chatReportDir string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long: `Start an interactive chat with Blue Query in the terminal.

Controls:
  Enter   - Send message
  Tab     - Fill in the next suggested question
  Ctrl+R  - Ask for a PDF report
  Ctrl+D  - Toggle deeper research mode
  PgUp/Dn - Scroll the conversation
  Esc     - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatMode, "mode", "normal", "initial chat mode: normal or deeper")
	chatCmd.Flags().StringVar(&chatReportDir, "report-dir", ".", "directory attached reports are saved to")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	s, err := svc()
	if err != nil {
		return err
	}
	if s.Sessions == nil {
		return errNotConfigured("chat session")
	}
	mode, err := domain.ParseChatMode(chatMode)
	if err != nil {
		return err
	}

	session := s.Sessions()
	session.SetMode(mode)

	app, err := tui.NewApp(tui.NewPorts(session))
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	app.WithContext(cmd.Context()).WithReportDir(chatReportDir)

	if err := app.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
