// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import "fmt"

// InvalidAccessionError reports an accession code rejected before any
// network activity. Check with errors.As.
type InvalidAccessionError struct {
	Input string
}

func (e *InvalidAccessionError) Error() string {
	return fmt.Sprintf("invalid accession code %q: want 4 alphanumeric characters", e.Input)
}

// NotFoundError reports that the upstream repository has no entry for the
// accession code (HTTP 404).
type NotFoundError struct {
	Accession string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry %s not found upstream", e.Accession)
}

// TransferError reports any non-404 HTTP error or transport failure.
// StatusCode is zero when the failure happened before a response arrived.
type TransferError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transfer from %s failed: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transfer from %s failed: %v", e.URL, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }
