package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

var (
	dataSeed      uint32
	dataCount     int
	dataDashboard bool
)

var dataCmd = &cobra.Command{
	Use:   "data [kind]",
	Short: "Generate a synthetic dataset",
	Long: `Generate a synthetic oceanographic dataset as JSON.

The same kind and seed always produce the same data. Without a kind the
supported kinds are listed; dashboard kinds are marked with *.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runData,
}

func init() {
	dataCmd.Flags().Uint32Var(&dataSeed, "seed", 0, "generator seed (0 = default)")
	dataCmd.Flags().IntVarP(&dataCount, "count", "n", 0, "number of points (0 = default)")
	dataCmd.Flags().BoolVar(&dataDashboard, "dashboard", false, "generate every dashboard dataset")
	rootCmd.AddCommand(dataCmd)
}

type datasetOutput struct {
	Kind domain.ChartKind `json:"kind"`
	Data domain.ChartData `json:"data"`
}

func runData(cmd *cobra.Command, args []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Datasets == nil {
		return errNotConfigured("dataset")
	}

	if dataDashboard {
		return runDashboard(cmd, s)
	}
	if len(args) == 0 {
		listKinds(cmd, s.Datasets.Kinds())
		return nil
	}

	kind, err := domain.ParseChartKind(args[0])
	if err != nil {
		return err
	}
	if dataCount < 0 {
		return fmt.Errorf("%w: count must not be negative", domain.ErrInvalidInput)
	}
	data, err := s.Datasets.Generate(cmd.Context(), kind, domain.DatasetParams{Seed: dataSeed, Count: dataCount})
	if err != nil {
		return err
	}
	return printJSON(cmd, datasetOutput{Kind: kind, Data: data})
}

func runDashboard(cmd *cobra.Command, s *Services) error {
	sets, err := s.Datasets.Dashboard(cmd.Context(), dataSeed)
	if err != nil {
		return err
	}
	out := make([]datasetOutput, 0, len(sets))
	for kind, data := range sets {
		out = append(out, datasetOutput{Kind: kind, Data: data})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return printJSON(cmd, out)
}

func listKinds(cmd *cobra.Command, kinds []domain.ChartKind) {
	dashboard := make(map[domain.ChartKind]bool)
	for _, k := range domain.DashboardChartKinds() {
		dashboard[k] = true
	}
	cmd.Println("Dataset kinds:")
	for _, k := range kinds {
		marker := " "
		if dashboard[k] {
			marker = "*"
		}
		cmd.Printf(" %s %s\n", marker, k)
	}
}
