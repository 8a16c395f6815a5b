package draft

import (
	"errors"
	"fmt"
	"strings"

	"blog-publishing-be/pkg/asset"
)

var (
	ErrSessionClosed    = errors.New("draft session is closed")
	ErrSessionDiscarded = errors.New("draft session was discarded")
	ErrEmptyPayload     = errors.New("staged payload is empty")
	ErrCommitInProgress = errors.New("draft session is already committing")
)

// CommitError reports the uploads that failed during a commit. Nothing was persisted
// and the session still holds every block and staged payload.
type CommitError struct {
	UploadErrors []asset.UploadError
}

func (e *CommitError) Error() string {
	ids := make([]string, len(e.UploadErrors))
	for i, ue := range e.UploadErrors {
		ids[i] = ue.TemporaryID
	}
	return fmt.Sprintf("commit failed: %d upload(s) failed: %s", len(e.UploadErrors), strings.Join(ids, ", "))
}

func (e *CommitError) Unwrap() []error {
	errs := make([]error, len(e.UploadErrors))
	for i, ue := range e.UploadErrors {
		errs[i] = ue
	}
	return errs
}

// PersistError wraps a failure of the persistence step after all uploads succeeded.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "persist document: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
