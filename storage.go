package aionxml

import (
	"github.com/pkg/errors"
	"os"
	"path/filepath"
)

// ReadDocument loads and parses the document stored at path.
func ReadDocument(path string) (*Element, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &StorageUnavailableError{Op: "open", Path: path, Err: errors.WithStack(err)}
	}
	defer func() {
		_ = file.Close()
	}()
	root := new(Element)
	if err := Parse(file, root); err != nil {
		var malformed *MalformedDocumentError
		if errors.As(err, &malformed) {
			malformed.Path = path
			return nil, malformed
		}
		return nil, err
	}
	return root, nil
}

// WriteDocument stores data at path. Truncate replaces the file through a temporary
// sibling and a rename, so a failed write leaves the previous content in place. perm
// applies to new files only; a replaced file keeps its mode.
func WriteDocument(path string, data []byte, mode WriteMode, perm os.FileMode) error {
	if mode == Append {
		return appendDocument(path, data, perm)
	}
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return &StorageUnavailableError{Op: "create", Path: path, Err: errors.WithStack(err)}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		return &StorageUnavailableError{Op: "write", Path: path, Err: errors.WithStack(err)}
	}
	if err := tmp.Chmod(perm); err != nil {
		return &StorageUnavailableError{Op: "chmod", Path: path, Err: errors.WithStack(err)}
	}
	if err := tmp.Close(); err != nil {
		return &StorageUnavailableError{Op: "close", Path: path, Err: errors.WithStack(err)}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &StorageUnavailableError{Op: "rename", Path: path, Err: errors.WithStack(err)}
	}
	committed = true
	return nil
}

func appendDocument(path string, data []byte, perm os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, perm)
	if err != nil {
		return &StorageUnavailableError{Op: "open", Path: path, Err: errors.WithStack(err)}
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(data); err != nil {
		return &StorageUnavailableError{Op: "write", Path: path, Err: errors.WithStack(err)}
	}
	if err := file.Sync(); err != nil {
		return &StorageUnavailableError{Op: "sync", Path: path, Err: errors.WithStack(err)}
	}
	return nil
}
