// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads native structure files from the RCSB repository
// by 4-character accession code.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/nativeget/pkg/types"
)

// rcsbDownloadBase is the fixed download endpoint. FetchConfig.BaseURL
// overrides it so tests can substitute httptest servers.
const rcsbDownloadBase = "https://files.rcsb.org/download/"

// accessionPattern matches valid accession codes: exactly 4 alphanumerics.
var accessionPattern = regexp.MustCompile(`^[0-9A-Za-z]{4}$`)

// Normalize validates an accession code and returns its canonical uppercase
// form. Invalid input fails with InvalidAccessionError before any I/O.
func Normalize(accession string) (string, error) {
	if !accessionPattern.MatchString(accession) {
		return "", &InvalidAccessionError{Input: accession}
	}
	return strings.ToUpper(accession), nil
}

// Fetcher retrieves single native structure files over HTTP.
type Fetcher struct {
	client *http.Client
	cfg    types.FetchConfig
	log    zerolog.Logger
}

// New builds a Fetcher. A nil client gets a default client with the
// configured timeout. An empty BaseURL selects the RCSB endpoint.
func New(client *http.Client, cfg types.FetchConfig, logger zerolog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = rcsbDownloadBase
	}
	return &Fetcher{client: client, cfg: cfg, log: logger}
}

// URL returns the download URL for a normalized accession code.
func (f *Fetcher) URL(code string) string {
	return f.cfg.BaseURL + code + ".pdb"
}

// Fetch downloads the entry named by accession into destDir, creating the
// directory if needed. The body streams into <CODE>.pdb.part and is renamed
// to <CODE>.pdb only once fully written, so the final path is never
// observable in a partial state. An existing file at the final path is
// overwritten by the rename. Returns the final path.
//
// Exactly one HTTP attempt is made per call; there is no retry.
func (f *Fetcher) Fetch(ctx context.Context, accession, destDir string) (string, error) {
	code, err := Normalize(accession)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", destDir, err)
	}

	target := filepath.Join(destDir, code+".pdb")
	url := f.URL(code)
	f.log.Debug().Str("accession", code).Str("url", url).Msg("downloading native")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &TransferError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", &NotFoundError{Accession: code}
	case resp.StatusCode != http.StatusOK:
		return "", &TransferError{URL: url, StatusCode: resp.StatusCode}
	}

	tmpPath := target + ".part"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", &TransferError{URL: url, Err: copyErr}
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return target, nil
}
