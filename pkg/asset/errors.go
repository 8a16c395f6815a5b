package asset

import "fmt"

// DanglingReferenceError reports a local reference with neither a staged payload nor
// an earlier resolution.
type DanglingReferenceError struct {
	TemporaryID string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling asset reference %q: nothing staged", e.TemporaryID)
}

// UploadError reports one asset that failed to upload. Retrying the commit may succeed.
type UploadError struct {
	TemporaryID string
	Cause       error
}

func (e UploadError) Error() string {
	return fmt.Sprintf("upload %q: %v", e.TemporaryID, e.Cause)
}

func (e UploadError) Unwrap() error {
	return e.Cause
}
