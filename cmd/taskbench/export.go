package main

import (
	"fmt"
	"os"

	"taskbench/internal/result"
	"taskbench/internal/store"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the seed task set to a file",
	Long:  `Export renders the seeded task collection in the given format. Useful for generating fixture files for client tests.`,
	Run:   runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json|csv|pdf")
	exportCmd.Flags().StringVar(&exportOut, "out", "tasks.json", "Output path")
}

func runExport(cmd *cobra.Command, args []string) {
	ex := result.NewExporter(store.New(), nil)
	b, err := ex.Export(exportFormat)
	if err != nil {
		fatal("export: %v", err)
	}
	if err := os.WriteFile(exportOut, b, 0644); err != nil {
		fatal("write: %v", err)
	}
	fmt.Printf("Exported -> %s\n", exportOut)
}
