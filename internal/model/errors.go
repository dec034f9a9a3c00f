package model

import "fmt"

// RowErrorKind classifies why a single row was excluded from an import.
type RowErrorKind string

const (
	RowErrorMapping    RowErrorKind = "mapping"
	RowErrorValidation RowErrorKind = "validation"
	RowErrorDuplicate  RowErrorKind = "duplicate"
)

// RowError is a recoverable, row-level problem. It never fails the file; the
// orchestrator counts it on the ImportRun and moves on.
type RowError struct {
	Kind RowErrorKind
	Code string
	Row  int // 1-based data row number, excluding the header
	Err  error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: %s/%s: %v", e.Row, e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("row %d: %s/%s", e.Row, e.Kind, e.Code)
}

func (e *RowError) Unwrap() error { return e.Err }

// FileError marks a whole file as unprocessable (unreadable, unrecognized
// format). The batch continues with the next file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("file %s: %v", e.Path, e.Err) }

func (e *FileError) Unwrap() error { return e.Err }

// StorageError wraps a failed commit-batch. The file's transactions were
// rolled back.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %v", e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// ArchiveError is reported as a warning: the file was imported but could not
// be moved to the archive.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string { return fmt.Sprintf("archiving %s: %v", e.Path, e.Err) }

func (e *ArchiveError) Unwrap() error { return e.Err }
