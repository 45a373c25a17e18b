package analysis

import "fmt"

// ErrClientNotFound indicates the requested client does not exist.
type ErrClientNotFound struct {
	ID int64
}

func (e *ErrClientNotFound) Error() string {
	return fmt.Sprintf("client not found: %d", e.ID)
}

// ErrJobNotFound indicates the requested job does not exist.
type ErrJobNotFound struct {
	ID int64
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %d", e.ID)
}

// ErrUnsupportedFile indicates the upload is neither PDF nor DOCX.
type ErrUnsupportedFile struct {
	Name string
}

func (e *ErrUnsupportedFile) Error() string {
	return fmt.Sprintf("unsupported file type: %s (only PDF and DOCX are accepted)", e.Name)
}

// ErrUnreadableFile indicates a supported file could not be parsed.
type ErrUnreadableFile struct {
	Name  string
	Cause error
}

func (e *ErrUnreadableFile) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Name, e.Cause)
}

func (e *ErrUnreadableFile) Unwrap() error {
	return e.Cause
}

// ErrEmptyResume indicates extraction produced no text. An empty resume
// is an input error, never a valid zero-content analysis.
type ErrEmptyResume struct{}

func (e *ErrEmptyResume) Error() string {
	return "file contains no extractable text"
}

// ErrQuotaExceeded indicates the candidate's usage limit is exhausted.
type ErrQuotaExceeded struct{}

func (e *ErrQuotaExceeded) Error() string {
	return "usage limit reached; upgrade your plan to continue"
}

// UpstreamError indicates an external dependency (embedding provider,
// language model) failed.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
