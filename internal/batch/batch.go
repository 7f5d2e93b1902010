// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch drives native-structure retrieval over a manifest of
// entries, renaming each downloaded file to its caller-supplied identifier.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/nativeget/internal/catalog"
	"github.com/pdiddy/nativeget/internal/fetch"
	"github.com/pdiddy/nativeget/internal/manifest"
	"github.com/pdiddy/nativeget/pkg/types"
)

// Orchestrator retrieves every entry named by a manifest, strictly one at a
// time. Entries must remain serial: the temporary filename is derived from
// the accession code, so two rows sharing one would race if parallelized.
type Orchestrator struct {
	Fetcher *fetch.Fetcher

	// Catalog, when non-nil, receives a record per completed entry.
	Catalog *catalog.Store

	// Set names the result set the entries belong to (the output
	// subdirectory name).
	Set string

	// Delay is a courtesy pause between consecutive downloads.
	Delay time.Duration

	Log zerolog.Logger
}

// Retrieve downloads every entry named by input into outputDir. input is
// either a path to a CSV manifest or a single literal accession code. Each
// fetched <CODE>.pdb is renamed to <OutputID>.pdb in table order. The first
// failure aborts the whole batch; files completed before the abort remain
// in place. After a fully successful run over a file input, the source
// table is copied verbatim into outputDir. Returns outputDir.
func (o *Orchestrator) Retrieve(ctx context.Context, input, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	entries, fromFile, err := manifest.Load(input)
	if err != nil {
		return "", err
	}

	for i, entry := range entries {
		if i > 0 && o.Delay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(o.Delay):
			}
		}
		if err := o.retrieveOne(ctx, entry, outputDir); err != nil {
			return "", err
		}
	}

	if fromFile {
		dest := filepath.Join(outputDir, filepath.Base(input))
		if err := copyFile(input, dest); err != nil {
			return "", fmt.Errorf("copying manifest: %w", err)
		}
	}
	return outputDir, nil
}

func (o *Orchestrator) retrieveOne(ctx context.Context, entry manifest.Entry, outputDir string) error {
	fetched, err := o.Fetcher.Fetch(ctx, entry.Accession, outputDir)
	if err != nil {
		return fmt.Errorf("retrieving %s: %w", entry.Accession, err)
	}

	final := filepath.Join(outputDir, entry.OutputID+".pdb")
	if final != fetched {
		if err := os.Rename(fetched, final); err != nil {
			return fmt.Errorf("renaming %s to %s: %w", fetched, final, err)
		}
	}

	info, err := os.Stat(final)
	if err != nil {
		return fmt.Errorf("stat %s: %w", final, err)
	}
	o.Log.Info().
		Str("accession", entry.Accession).
		Str("output", final).
		Int64("bytes", info.Size()).
		Msg("retrieved native")

	if o.Catalog == nil {
		return nil
	}
	code, err := fetch.Normalize(entry.Accession)
	if err != nil {
		return err
	}
	return o.Catalog.Record(ctx, types.NativeRecord{
		OutputID:  entry.OutputID,
		Accession: code,
		Set:       o.Set,
		Path:      final,
		SizeBytes: info.Size(),
		SourceURL: o.Fetcher.URL(code),
		FetchedAt: time.Now(),
	})
}

// copyFile copies src to dst, truncating any existing file at dst. When
// src and dst are the same file (the manifest already lives in the output
// directory) the copy is skipped, as truncating dst would empty src.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}
