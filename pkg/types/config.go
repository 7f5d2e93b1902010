// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared configuration and record types for nativeget.
package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "nativeget/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for retrieving native structures.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the download endpoint prefix. Empty selects the RCSB
	// download service.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// DownloadDelay is a courtesy pause between consecutive downloads
	// (default 0, no pause).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`
}
