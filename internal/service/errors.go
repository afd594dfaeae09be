package service

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrClientNotFound   = errors.New("client not found")
)

// MaxLogoSize is the largest logo accepted, measured before base64 encoding.
const MaxLogoSize = 500 * 1024

// ValidationError is a user correctable input problem. Nothing was changed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError reports a failed read or write of the persisted state. After a failed
// write the in-memory state still holds the change.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ImportFormatError means an imported backup does not have the expected shape.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid backup file: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid backup file: %s", e.Reason)
}

func (e *ImportFormatError) Unwrap() error {
	return e.Err
}

type AssetTooLargeError struct {
	Size  int
	Limit int
}

func (e *AssetTooLargeError) Error() string {
	return fmt.Sprintf("logo too large: %d KiB (max %d KiB)", (e.Size+1023)/1024, e.Limit/1024)
}
