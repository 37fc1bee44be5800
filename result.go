package htmlprint

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Result holds a generated PDF.
//
// Its methods may be called any number of times; the data is never modified.
type Result struct {
	data []byte
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Reader returns an [*bytes.Reader] over the PDF content.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// SaveAs writes the PDF to path with mode 0644, replacing any existing
// file. When createDirs is set, missing parent directories are created.
func (r *Result) SaveAs(path string, createDirs bool) error {
	if err := prepareDir(path, createDirs); err != nil {
		return err
	}
	return writeFileAtomic(path, r.data, 0o644)
}

// storeRendered writes the output of render to path. With createDirs
// unset a missing parent is reported before render runs; with it set the
// parent is created only once render has succeeded.
func storeRendered(path string, createDirs bool, perm os.FileMode, render func() ([]byte, error)) error {
	if !createDirs {
		if err := prepareDir(path, false); err != nil {
			return err
		}
	}
	data, err := render()
	if err != nil {
		return err
	}
	if createDirs {
		if err := prepareDir(path, true); err != nil {
			return err
		}
	}
	return writeFileAtomic(path, data, perm)
}

// prepareDir makes sure the parent directory of path exists.
func prepareDir(path string, create bool) error {
	dir := filepath.Dir(path)
	if create {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("htmlprint: creating %s: %w", dir, err)
		}
		return nil
	}
	fi, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNoDirectory, dir)
	}
	if err != nil {
		return fmt.Errorf("htmlprint: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("htmlprint: %s is not a directory", dir)
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so
// readers never observe a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".htmlprint-*.pdf")
	if err != nil {
		return fmt.Errorf("htmlprint: creating temp file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("htmlprint: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("htmlprint: closing temp file: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("htmlprint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("htmlprint: %w", err)
	}
	return nil
}
