// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nativeget/internal/batch"
	"github.com/pdiddy/nativeget/internal/catalog"
	"github.com/pdiddy/nativeget/internal/fetch"
	"github.com/pdiddy/nativeget/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultSetName   = "natives"
	defaultUserAgent = "nativeget/0.1"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Download native structures named by an accession code or CSV manifest",
	Long: `Get downloads native structure files from RCSB. The input is either a
single 4-character accession code or a path to a CSV manifest with a pdb_id
column and an optional id column supplying the output name per row.

Files land in <output-dir>/<name>/ as <id>.pdb. For a manifest input, the
manifest itself is copied into the same directory after the batch completes.
The first failure aborts the batch; files already downloaded stay in place.`,
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringP("input", "i", "", "accession code or path to CSV manifest (required)")
	getCmd.MarkFlagRequired("input")
	getCmd.Flags().StringP("output-dir", "o", "", "directory to save into (default current directory)")
	getCmd.Flags().String("name", "", `name of the output subdirectory (default "natives")`)
	getCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	getCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default none)")
	getCmd.Flags().Bool("no-catalog", false, "do not record retrieved entries in the catalog")

	rootCmd.AddCommand(getCmd)
}

// setting resolves a string option: flag, then config file / environment,
// then built-in default.
func setting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func durationSetting(cmd *cobra.Command, flag, key string, fallback time.Duration) time.Duration {
	if v, _ := cmd.Flags().GetDuration(flag); v != 0 {
		return v
	}
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return fallback
}

func runGet(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	outputDir := setting(cmd, "output-dir", "output_dir", ".")
	name := setting(cmd, "name", "name", defaultSetName)
	noCatalog, _ := cmd.Flags().GetBool("no-catalog")

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "timeout", defaultTimeout),
			UserAgent: userAgent,
		},
		BaseURL:       viper.GetString("base_url"),
		DownloadDelay: durationSetting(cmd, "delay", "download_delay", 0),
	}

	client := &http.Client{Timeout: cfg.Timeout}
	orch := &batch.Orchestrator{
		Fetcher: fetch.New(client, cfg, logger),
		Set:     name,
		Delay:   cfg.DownloadDelay,
		Log:     logger,
	}

	if !noCatalog {
		store, err := catalog.Open(outputDir)
		if err != nil {
			return err
		}
		defer store.Close()
		orch.Catalog = store
	}

	_, err := orch.Retrieve(cmd.Context(), input, filepath.Join(outputDir, name))
	return err
}
