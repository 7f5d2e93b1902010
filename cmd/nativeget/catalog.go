// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nativeget/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the ledger of retrieved natives",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List retrieved natives recorded in the catalog",
	RunE:  runCatalogList,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to a YAML snapshot",
	RunE:  runCatalogExport,
}

func init() {
	for _, c := range []*cobra.Command{catalogListCmd, catalogExportCmd} {
		c.Flags().StringP("output-dir", "o", "", "output directory holding the catalog (default current directory)")
		c.Flags().String("name", "", "restrict to one result set")
	}
	catalogExportCmd.Flags().String("to", "", "destination file (default <output-dir>/index/natives.yaml)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	outputDir := setting(cmd, "output-dir", "output_dir", ".")
	name, _ := cmd.Flags().GetString("name")

	store, err := catalog.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(cmd.Context(), name)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("catalog is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SET\tID\tACCESSION\tSIZE\tFETCHED\tPATH")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.Set, r.OutputID, r.Accession, r.SizeBytes,
			r.FetchedAt.Format("2006-01-02 15:04"), r.Path)
	}
	return w.Flush()
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	outputDir := setting(cmd, "output-dir", "output_dir", ".")
	name, _ := cmd.Flags().GetString("name")
	to, _ := cmd.Flags().GetString("to")
	if to == "" {
		to = filepath.Join(outputDir, "index", "natives.yaml")
	}

	store, err := catalog.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ExportYAML(cmd.Context(), name, to); err != nil {
		return err
	}
	fmt.Println("Exported catalog to", to)
	return nil
}
