// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// NativeRecord describes one retrieved native structure as stored in the
// catalog ledger.
type NativeRecord struct {
	// OutputID is the caller-supplied identifier the file was renamed to.
	OutputID string `json:"output_id" yaml:"output_id"`

	// Accession is the 4-character upstream accession code, uppercased.
	Accession string `json:"accession" yaml:"accession"`

	// Set is the name of the output subdirectory the file belongs to
	// (default "natives").
	Set string `json:"set" yaml:"set"`

	// Path is the final on-disk location of the file.
	Path string `json:"path" yaml:"path"`

	// SizeBytes is the size of the downloaded file.
	SizeBytes int64 `json:"size_bytes" yaml:"size_bytes"`

	// SourceURL is the URL the file was downloaded from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// FetchedAt is the time the download completed.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
