package pmpcal

import (
	"pmpcal/internal/retry"
	"pmpcal/metadata"
	"pmpcal/storage"
	"pmpcal/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, pmpcal.ErrNotFound) {
//		fmt.Println("not found")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var genErr *pmpcal.GenerationError
//	if errors.As(err, &genErr) {
//		fmt.Printf("slot %s failed: %v\n", genErr.SlotID, genErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// GenerationError wraps a per-slot metadata generation failure.
	GenerationError = metadata.GenerationError
	// StorageError wraps errors during output storage operations.
	StorageError = storage.StorageError
	// SubmitError wraps a per-record YouTube submission failure.
	SubmitError = youtube.SubmitError
	// RetryableError wraps errors that persisted after retries were exhausted.
	RetryableError = retry.RetryableError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrNotInitialized indicates LoadConfigurations has not been called.
	ErrNotInitialized = metadata.ErrNotInitialized

	// Storage errors
	// ErrNotFound indicates an output entity was not found.
	ErrNotFound = storage.ErrNotFound
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = storage.ErrInvalidInput
	// ErrLockTimeout indicates a timeout acquiring the output lock.
	ErrLockTimeout = storage.ErrLockTimeout

	// YouTube errors
	// ErrQuotaExhausted indicates the estimated API quota ran out.
	ErrQuotaExhausted = youtube.ErrQuotaExhausted
	// ErrNoMapping indicates a slot has no mapped video ID.
	ErrNoMapping = youtube.ErrNoMapping
)

// IsRetryable determines if an error should be retried.
func IsRetryable(err error) bool {
	return retry.IsRetryable(err)
}
