package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var floatsJSON bool

var floatsCmd = &cobra.Command{
	Use:   "floats",
	Short: "Manage the ARGO float dataset",
	RunE:  runFloatsList,
}

var floatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all floats",
	Args:  cobra.NoArgs,
	RunE:  runFloatsList,
}

var floatsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a float",
	Args:  cobra.ExactArgs(1),
	RunE:  runFloatsShow,
}

var floatsImportCmd = &cobra.Command{
	Use:   "import [file.csv]",
	Short: "Replace the floats with a CSV file",
	Long: `Replace the float dataset with the rows of a CSV file.

The file needs a header with the columns id, lat, lng and location. The
import is all-or-nothing: a bad row leaves the current floats unchanged.
Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runFloatsImport,
}

func init() {
	floatsCmd.PersistentFlags().BoolVar(&floatsJSON, "json", false, "output results as JSON")
	floatsCmd.AddCommand(floatsListCmd, floatsShowCmd, floatsImportCmd)
	rootCmd.AddCommand(floatsCmd)
}

func runFloatsList(cmd *cobra.Command, _ []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Floats == nil {
		return errNotConfigured("float")
	}

	floats, err := s.Floats.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list floats: %w", err)
	}
	if floatsJSON {
		return printJSON(cmd, floats)
	}
	if len(floats) == 0 {
		cmd.Println("No floats found.")
		return nil
	}

	cmd.Printf("%-10s  %-15s  %9s  %9s  %s\n", "ID", "SEA", "LAT", "LNG", "LOCATION")
	for _, f := range floats {
		cmd.Printf("%-10s  %-15s  %9.4f  %9.4f  %s\n", f.ID, f.Sea, f.Lat, f.Lng, f.Location)
	}
	cmd.Printf("\n%d floats\n", len(floats))
	return nil
}

func runFloatsShow(cmd *cobra.Command, args []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Floats == nil {
		return errNotConfigured("float")
	}

	f, err := s.Floats.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if floatsJSON {
		return printJSON(cmd, f)
	}
	cmd.Printf("Float %s\n", f.ID)
	cmd.Printf("  Location: %s\n", f.Location)
	cmd.Printf("  Sea: %s\n", f.Sea)
	cmd.Printf("  Position: %.4f, %.4f\n", f.Lat, f.Lng)
	return nil
}

func runFloatsImport(cmd *cobra.Command, args []string) error {
	s, err := svc()
	if err != nil {
		return err
	}
	if s.Floats == nil {
		return errNotConfigured("float")
	}

	r := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	n, err := s.Floats.Import(cmd.Context(), r)
	if err != nil {
		return err
	}
	cmd.Printf("Imported %d floats\n", n)
	return nil
}
