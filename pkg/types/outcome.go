// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ItemOutcome records what happened to one search result item.
type ItemOutcome string

const (
	// OutcomeSkipped: URL extension did not match; no request was made.
	OutcomeSkipped ItemOutcome = "skipped"
	// OutcomeFetchFailed: transport, timeout or local I/O error; no file remains.
	OutcomeFetchFailed ItemOutcome = "fetch_failed"
	// OutcomeKept: the file passed validation and stays on disk.
	OutcomeKept ItemOutcome = "kept"
	// OutcomeDeleted: the file was written, failed validation and was removed.
	OutcomeDeleted ItemOutcome = "deleted"
)
