package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// markdownWidth is the word wrap used when rendering answers on a terminal.
const markdownWidth = 100

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// isTerminal reports whether the command writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderMarkdown formats text for the terminal. Piped output and raw mode
// get the text unchanged.
func renderMarkdown(cmd *cobra.Command, text string, raw bool) string {
	if raw || !isTerminal(cmd) {
		return text
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(markdownWidth))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// writeDocument saves doc to path, deriving a file name from the title
// when path is empty. It returns the path written.
func writeDocument(path string, doc *domain.Document) (string, error) {
	if doc == nil || len(doc.Data) == 0 {
		return "", domain.ErrNoReportContent
	}
	if path == "" {
		path = fileName(doc.Title) + doc.Extension()
	}
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil { //nolint:gosec // user documents are world readable
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// fileName turns a title into a lowercase, hyphenated file name.
func fileName(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimRight(b.String(), "-")
	if name == "" {
		return "bluequery-report"
	}
	return name
}

// readAll reads the command's stdin.
func readAll(cmd *cobra.Command) (string, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
