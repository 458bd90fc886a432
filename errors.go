package aionxml

import (
	"fmt"
	"github.com/pkg/errors"
	"strings"
)

var (
	DetachedElementError = errors.New("element is undefined")
	ErrIndexOutOfRange   = errors.New("index position out of range")
)

// MalformedDocumentError is returned when stored content cannot be parsed into a single-rooted tree.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed document: %v", e.Err)
	}
	return fmt.Sprintf("malformed document %s: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// UnknownParentError is returned by Builder.AddChild when the parent tag was never created
// in the builder.
type UnknownParentError struct {
	Tag   string
	Known []string
}

func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("couldn't find parent %q, the available parents are [%s]", e.Tag, strings.Join(e.Known, ", "))
}

// StorageUnavailableError wraps an OS level failure to read or write a document.
type StorageUnavailableError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

func IsMalformed(err error) bool {
	var target *MalformedDocumentError
	return errors.As(err, &target)
}

func IsUnknownParent(err error) bool {
	var target *UnknownParentError
	return errors.As(err, &target)
}

func IsStorageUnavailable(err error) bool {
	var target *StorageUnavailableError
	return errors.As(err, &target)
}
