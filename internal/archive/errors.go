package archive

import "fmt"

// MissingArchiveError indicates the expected archive substructure is absent.
// Fatal: no partial output is produced.
type MissingArchiveError struct {
	Path string
}

// Error implements the error interface
func (e *MissingArchiveError) Error() string {
	return fmt.Sprintf("archive data directory not found: %s", e.Path)
}

// MalformedRecordError indicates a present file failed to parse after
// prefix stripping. Recoverable: the file is skipped with a warning.
type MalformedRecordError struct {
	File string
	Err  error
}

// Error implements the error interface
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed archive file %s: %v", e.File, e.Err)
}

// Unwrap returns the underlying parse error
func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
