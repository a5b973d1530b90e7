package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

var (
	reportOutput string
	reportJSON   bool

	snapshotKinds  []string
	snapshotSeed   uint32
	snapshotFormat string
	snapshotOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report [topic]",
	Short: "Generate a PDF report",
	Long: `Generate a structured PDF report about ARGO float data.

The report content comes from the AI report flow and is rendered with a
title, introduction, key insights and recommendations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render dashboard charts to an image",
	Long: `Render synthetic dashboard datasets into a single PNG or PDF snapshot.

Without --kinds every descriptive dashboard chart is drawn.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file (default: named after the title)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report content as JSON")
	rootCmd.AddCommand(reportCmd)

	snapshotCmd.Flags().StringSliceVar(&snapshotKinds, "kinds", nil, "chart kinds to include")
	snapshotCmd.Flags().Uint32Var(&snapshotSeed, "seed", 0, "generator seed (0 = default)")
	snapshotCmd.Flags().StringVar(&snapshotFormat, "format", "png", "output format: png or pdf")
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "output file (default: dashboard-snapshot.<format>)")
	rootCmd.AddCommand(snapshotCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Reports == nil {
		return errNotConfigured("report")
	}

	report, err := s.Reports.Generate(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	path, err := writeDocument(reportOutput, report.Document)
	if err != nil {
		return err
	}

	if reportJSON {
		return printJSON(cmd, report.Content)
	}

	cmd.Printf("%s\n", report.Content.Title)
	for _, insight := range report.Content.KeyInsights {
		cmd.Printf("  - %s\n", insight)
	}
	cmd.Printf("\nReport saved to %s (%d pages)\n", path, report.Document.Pages)
	return nil
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Reports == nil {
		return errNotConfigured("report")
	}

	format, err := domain.ParseSnapshotFormat(snapshotFormat)
	if err != nil {
		return err
	}
	kinds := make([]domain.ChartKind, 0, len(snapshotKinds))
	for _, k := range snapshotKinds {
		kind, err := domain.ParseChartKind(k)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	doc, err := s.Reports.Snapshot(cmd.Context(), kinds, snapshotSeed, format)
	if err != nil {
		return err
	}

	out := snapshotOutput
	if out == "" {
		out = "dashboard-snapshot" + doc.Extension()
	}
	path, err := writeDocument(out, doc)
	if err != nil {
		return err
	}
	cmd.Printf("Snapshot saved to %s\n", path)
	return nil
}
