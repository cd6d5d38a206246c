package service

import "errors"

// ErrRetrievalUnavailable means the embedding backend timed out or failed.
// The citation gate treats it exactly like an empty evidence set: blocked.
var ErrRetrievalUnavailable = errors.New("retrieval unavailable")

// ErrTransitionConflict is a concurrent-transition race on the same draft.
// Retryable; never a policy rejection.
var ErrTransitionConflict = errors.New("concurrent draft transition")

// ErrNotFound covers lookups of drafts, cases or documents that don't exist.
var ErrNotFound = errors.New("record not found")

// ErrInvalidCredentials is returned by clinician login.
var ErrInvalidCredentials = errors.New("invalid credentials")
