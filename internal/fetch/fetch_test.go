// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nativeget/pkg/types"
)

const fakePDBContent = "HEADER    PLANT PROTEIN                           30-APR-81   1CRN\nEND\n"

func testFetcher(baseURL string, client *http.Client) *Fetcher {
	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "nativeget-test"},
		BaseURL:    baseURL,
	}
	return New(client, cfg, zerolog.Nop())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercase", "1crn", "1CRN", false},
		{"uppercase", "4HHB", "4HHB", false},
		{"mixed", "1aBc", "1ABC", false},
		{"digits only", "1234", "1234", false},
		{"too short", "1cr", "", true},
		{"too long", "1crnx", "", true},
		{"punctuation", "1cr!", "", true},
		{"embedded space", "1c n", "", true},
		{"leading space", " 1crn", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				var invalidErr *InvalidAccessionError
				if !errors.As(err, &invalidErr) {
					t.Fatalf("Normalize(%q) error = %v, want InvalidAccessionError", tt.input, err)
				}
				if invalidErr.Input != tt.input {
					t.Errorf("InvalidAccessionError.Input = %q, want %q", invalidErr.Input, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFetchInvalidAccessionMakesNoRequest(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	f := testFetcher(ts.URL+"/", ts.Client())
	_, err := f.Fetch(context.Background(), "not-a-code", t.TempDir())

	var invalidErr *InvalidAccessionError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no request should be made for invalid input")
}

func TestFetchNormalizesCase(t *testing.T) {
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(fakePDBContent))
	}))
	defer ts.Close()

	dir := t.TempDir()
	f := testFetcher(ts.URL+"/", ts.Client())

	lower, err := f.Fetch(context.Background(), "1crn", dir)
	require.NoError(t, err)
	upper, err := f.Fetch(context.Background(), "1CRN", dir)
	require.NoError(t, err)

	assert.Equal(t, upper, lower, "both spellings must produce the same path")
	assert.Equal(t, filepath.Join(dir, "1CRN.pdb"), lower)
	require.Len(t, paths, 2)
	assert.Equal(t, "/1CRN.pdb", paths[0])
	assert.Equal(t, "/1CRN.pdb", paths[1])

	data, err := os.ReadFile(lower)
	require.NoError(t, err)
	assert.Equal(t, fakePDBContent, string(data))
}

func TestFetchCreatesDestDir(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(fakePDBContent))
	}))
	defer ts.Close()

	dir := filepath.Join(t.TempDir(), "deep", "nested")
	f := testFetcher(ts.URL+"/", ts.Client())

	path, err := f.Fetch(context.Background(), "1crn", dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFetchNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	f := testFetcher(ts.URL+"/", ts.Client())
	_, err := f.Fetch(context.Background(), "9xyz", t.TempDir())

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9XYZ", notFound.Accession)

	var transferErr *TransferError
	assert.False(t, errors.As(err, &transferErr), "404 must map to NotFoundError, not TransferError")
}

func TestFetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	f := testFetcher(ts.URL+"/", ts.Client())
	_, err := f.Fetch(context.Background(), "1crn", t.TempDir())

	var transferErr *TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, http.StatusInternalServerError, transferErr.StatusCode)
}

func TestFetchTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	base := ts.URL + "/"
	ts.Close()

	f := testFetcher(base, &http.Client{})
	_, err := f.Fetch(context.Background(), "1crn", t.TempDir())

	var transferErr *TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Zero(t, transferErr.StatusCode)
	assert.Error(t, transferErr.Err)
}

func TestFetchInterruptedTransferLeavesNoFinalFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Declare more bytes than are written; the server aborts the
		// connection mid-body and the client sees an unexpected EOF.
		w.Header().Set("Content-Length", "4096")
		w.Write([]byte("ATOM"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	f := testFetcher(ts.URL+"/", ts.Client())

	_, err := f.Fetch(context.Background(), "1crn", dir)

	var transferErr *TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.NoFileExists(t, filepath.Join(dir, "1CRN.pdb"), "final path must never hold a partial file")
	assert.NoFileExists(t, filepath.Join(dir, "1CRN.pdb.part"))
}

func TestFetchOverwritesExisting(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(fakePDBContent))
	}))
	defer ts.Close()

	dir := t.TempDir()
	target := filepath.Join(dir, "1CRN.pdb")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o644))

	f := testFetcher(ts.URL+"/", ts.Client())
	path, err := f.Fetch(context.Background(), "1CRN", dir)
	require.NoError(t, err)
	require.Equal(t, target, path)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, fakePDBContent, string(data), "re-download overwrites the existing file")
}
